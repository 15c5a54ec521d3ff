package memory

import (
	"context"
	"sync"

	"github.com/stepedge/concierge/pkg/domain"
)

// Store implements ports.SessionStore in process memory. Safe for concurrent
// use. Sessions live for the lifetime of the process; an id that is never
// reused is simply garbage.
type Store struct {
	data map[string]*domain.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Session),
	}
}

// Save persists the session in memory. The session is deep-copied so later
// caller mutations cannot leak into the store.
func (s *Store) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	copied := sess.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the session, deep-copied so the caller cannot mutate stored
// state through shared slices.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active session ids.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
