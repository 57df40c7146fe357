package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/auth"
	"github.com/ekaya-inc/sqlassist/pkg/session"
)

// HistoryHandler exposes the session's query history.
type HistoryHandler struct {
	manager *auth.Manager
	states  *session.Store
	logger  *zap.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(manager *auth.Manager, states *session.Store, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		manager: manager,
		states:  states,
		logger:  logger,
	}
}

// RegisterRoutes registers the history routes behind the login gate.
func (h *HistoryHandler) RegisterRoutes(mux *http.ServeMux, gate func(http.Handler) http.Handler) {
	mux.Handle("GET /api/history", gate(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/history/clear", gate(http.HandlerFunc(h.Clear)))
}

// HistoryResponse contains the full stored history plus the display window.
type HistoryResponse struct {
	Entries []session.HistoryEntry `json:"entries"`
	Recent  []session.HistoryEntry `json:"recent"`
	Count   int                    `json:"count"`
}

// List handles GET /api/history. Entries holds everything stored; Recent
// is the last-5 window the page displays, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, err := h.manager.SessionID(w, r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, "session_error", "Could not establish a session.")
		return
	}

	state := h.states.Snapshot(sid)
	entries := state.History
	if entries == nil {
		entries = []session.HistoryEntry{}
	}

	_ = WriteJSON(w, http.StatusOK, HistoryResponse{
		Entries: entries,
		Recent:  state.RecentHistory(),
		Count:   len(state.History),
	})
}

// Clear handles POST /api/history/clear: drops the history and resets the
// current question and generated SQL.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid, err := h.manager.SessionID(w, r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, "session_error", "Could not establish a session.")
		return
	}

	h.states.Update(sid, func(s *session.State) {
		s.ClearHistory()
	})

	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
