package ports

import (
	"context"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

// SnapshotStore persists preview sessions, enabling "disconnect & resume"
// preview workflows across dev-server restarts or replicas.
type SnapshotStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, session *domain.PreviewSession) error

	// Load retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*domain.PreviewSession, error)

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
