package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store keeps session states in memory, keyed by the session ID carried in
// the browser cookie. States for browsers that disappear without logging
// out are reclaimed by Prune.
type Store struct {
	mu     sync.Mutex
	states map[string]*State
	logger *zap.Logger
}

// NewStore creates an empty session store.
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		states: make(map[string]*State),
		logger: logger.Named("session"),
	}
}

// Update runs fn against the state for the given session ID under the
// store lock, creating the state on first use. fn must not retain the
// *State after returning.
func (st *Store) Update(id string, fn func(*State)) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.states[id]
	if !ok {
		s = &State{}
		st.states[id] = s
	}
	s.lastSeen = time.Now()
	fn(s)
}

// Snapshot returns a copy of the state for the given session ID. The copy
// shares the history backing array; history entries are immutable so this
// is safe.
func (st *Store) Snapshot(id string) State {
	var snap State
	st.Update(id, func(s *State) {
		snap = *s
	})
	return snap
}

// Delete removes a session state.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.states, id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.states)
}

// Prune drops states that have not been touched within maxIdle.
func (st *Store) Prune(maxIdle time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	pruned := 0
	for id, s := range st.states {
		if s.lastSeen.Before(cutoff) {
			delete(st.states, id)
			pruned++
		}
	}
	if pruned > 0 {
		st.logger.Info("Pruned idle sessions",
			zap.Int("pruned", pruned),
			zap.Int("remaining", len(st.states)))
	}
}

// StartJanitor prunes idle sessions on the given interval until stop is
// closed.
func (st *Store) StartJanitor(interval, maxIdle time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st.Prune(maxIdle)
			case <-stop:
				return
			}
		}
	}()
}
