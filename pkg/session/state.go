// Package session holds the server-side state for each browser session:
// login flag, the question/SQL currently being worked on, and the query
// history. State lives in an in-memory map keyed by a session cookie, so
// it survives page reloads but not a process restart.
package session

import "time"

// HistoryDisplayLimit is how many history entries the page shows. Storage
// is unbounded; only the display window is capped.
const HistoryDisplayLimit = 5

// HistoryEntry is an immutable snapshot of one successful query execution.
type HistoryEntry struct {
	Question   string    `json:"question"`
	SQL        string    `json:"sql"`
	RowCount   int       `json:"row_count"`
	ExecutedAt time.Time `json:"executed_at"`
}

// State is the per-browser-session mutable record. It is created on first
// page load, mutated by UI actions, and dropped when the session is pruned.
// All access goes through Store, which handles locking.
type State struct {
	LoggedIn        bool
	CurrentQuestion string
	GeneratedSQL    string
	RawResponse     string
	History         []HistoryEntry

	lastSeen time.Time
}

// BeginGeneration stores the new question and clears any previously
// generated SQL. Always called before the LLM request so a failed
// generation never leaves stale SQL on the page.
func (s *State) BeginGeneration(question string) {
	s.CurrentQuestion = question
	s.GeneratedSQL = ""
	s.RawResponse = ""
}

// AppendHistory records a successful execution. History is append-only.
func (s *State) AppendHistory(entry HistoryEntry) {
	s.History = append(s.History, entry)
}

// RecentHistory returns the display window: the most recent entries,
// newest first, capped at HistoryDisplayLimit.
func (s *State) RecentHistory() []HistoryEntry {
	n := len(s.History)
	limit := n
	if limit > HistoryDisplayLimit {
		limit = HistoryDisplayLimit
	}

	recent := make([]HistoryEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		recent = append(recent, s.History[i])
	}
	return recent
}

// ClearHistory empties the history and resets the current question and
// generated SQL, returning the page to its initial logged-in state.
func (s *State) ClearHistory() {
	s.History = nil
	s.GeneratedSQL = ""
	s.RawResponse = ""
	s.CurrentQuestion = ""
}
