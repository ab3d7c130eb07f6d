package state

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps conversation state in process memory, the default for a
// single-process run. Loads and saves copy the state so callers never share
// slices with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*ConversationState
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*ConversationState),
	}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*ConversationState, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrStateNotFound
	}
	return st.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, st *ConversationState) error {
	if st == nil {
		return ErrNilSessionState
	}
	if err := st.Validate(); err != nil {
		return err
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[st.SessionID] = st.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
