package memory

import (
	"context"
	"sync"

	"trivia-quiz/internal/app"
)

// SessionRegistry is an in-memory implementation of app.SessionRegistry.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[int64]string
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[int64]string),
	}
}

func (r *SessionRegistry) Acquire(_ context.Context, playerID int64, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[playerID]; ok {
		return app.ErrSessionActive
	}
	r.sessions[playerID] = sessionID
	return nil
}

func (r *SessionRegistry) Release(_ context.Context, playerID int64, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[playerID] == sessionID {
		delete(r.sessions, playerID)
	}
	return nil
}

// Active returns the session id held by playerID.
func (r *SessionRegistry) Active(playerID int64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.sessions[playerID]
	return id, ok
}
