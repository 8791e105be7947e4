package service

import (
	"sync"

	"github.com/greenquest/mythbuster-api/internal/game"
)

// SessionRegistry holds the in-memory player state for active sessions.
// Each state is exclusively owned by its session; the registry hands out
// copies, and the UI layer serializes turns per session, so the mutex only
// guards the map itself across sessions.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]game.PlayerState
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]game.PlayerState)}
}

// Put stores the state for a session id, replacing any previous state.
func (r *SessionRegistry) Put(id string, state game.PlayerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = state
}

// Get returns a copy of the session's state.
func (r *SessionRegistry) Get(id string) (game.PlayerState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.sessions[id]
	return state, ok
}

// Delete discards the session's state. An abandoned session leaves no
// trace beyond what its completed turns already persisted.
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
