package memory

import (
	"context"
	"sync"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
)

// SnapshotStore is an in-memory implementation of ports.SnapshotStore.
// Sessions are deep-copied on save and load so callers cannot mutate
// stored state through retained references.
type SnapshotStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.PreviewSession
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		sessions: make(map[string]*domain.PreviewSession),
	}
}

// Save persists a copy of the session.
func (s *SnapshotStore) Save(_ context.Context, session *domain.PreviewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(session)
	return nil
}

// Load retrieves a copy of the session.
func (s *SnapshotStore) Load(_ context.Context, id string) (*domain.PreviewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return copySession(session), nil
}

// Delete removes a session. Deleting an absent session is a no-op.
func (s *SnapshotStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// List returns the IDs of all stored sessions.
func (s *SnapshotStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

func copySession(session *domain.PreviewSession) *domain.PreviewSession {
	out := *session
	out.Signals = make(domain.Snapshot, len(session.Signals))
	for k, v := range session.Signals {
		out.Signals[k] = v
	}
	return &out
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)
