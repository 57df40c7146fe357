package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStore_UpdateCreatesState(t *testing.T) {
	store := NewStore(zap.NewNop())

	store.Update("sid-1", func(s *State) {
		s.LoggedIn = true
	})

	assert.Equal(t, 1, store.Len())
	assert.True(t, store.Snapshot("sid-1").LoggedIn)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := NewStore(zap.NewNop())

	store.Update("sid-a", func(s *State) { s.CurrentQuestion = "a" })
	store.Update("sid-b", func(s *State) { s.CurrentQuestion = "b" })

	assert.Equal(t, "a", store.Snapshot("sid-a").CurrentQuestion)
	assert.Equal(t, "b", store.Snapshot("sid-b").CurrentQuestion)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(zap.NewNop())
	store.Update("sid-1", func(s *State) { s.LoggedIn = true })

	store.Delete("sid-1")

	assert.Equal(t, 0, store.Len())
	assert.False(t, store.Snapshot("sid-1").LoggedIn)
}

func TestStore_PruneDropsIdleSessions(t *testing.T) {
	store := NewStore(zap.NewNop())
	store.Update("stale", func(s *State) {})
	store.Update("fresh", func(s *State) {})

	// Backdate the stale session past the idle cutoff.
	store.mu.Lock()
	store.states["stale"].lastSeen = time.Now().Add(-2 * time.Hour)
	store.mu.Unlock()

	store.Prune(time.Hour)

	assert.Equal(t, 1, store.Len())
	store.mu.Lock()
	_, ok := store.states["fresh"]
	store.mu.Unlock()
	assert.True(t, ok)
}
