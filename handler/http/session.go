package http

import (
	"sync"

	"github.com/google/uuid"

	"buchat/src/core/classify"
)

// Session is one chat session's conversation state. Its mutex serializes
// answer calls within the session; different sessions run concurrently.
type Session struct {
	mu   sync.Mutex
	conv classify.Context
}

// SessionRegistry maps session IDs to their conversation state.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*Session),
	}
}

// Acquire returns the session for id, minting a fresh ID when none was
// given, and creating the session on first use.
func (r *SessionRegistry) Acquire(id string) (*Session, string) {
	if id == "" {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = &Session{}
		r.sessions[id] = s
	}
	return s, id
}
