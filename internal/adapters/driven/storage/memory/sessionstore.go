package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Sessions idle for longer than the TTL are evicted on the next access.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a new in-memory session store. ttl <= 0 disables expiry.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Save stores or replaces a session.
func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	if stored.AccessedAt.IsZero() {
		stored.AccessedAt = s.now()
	}
	s.sessions[stored.ID] = stored
	return nil
}

// Get retrieves a session by ID and refreshes its access time.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	session.AccessedAt = s.now()
	s.sessions[id] = session
	return &session, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// List returns all live sessions, oldest first.
func (s *SessionStore) List(_ context.Context) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()

	result := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	return len(s.sessions)
}

func (s *SessionStore) evictLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, session := range s.sessions {
		if session.AccessedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
