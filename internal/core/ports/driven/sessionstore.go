package driven

import (
	"context"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// SessionStore holds loaded documents between user actions.
// Contents live for the process lifetime only.
type SessionStore interface {
	// Save stores or replaces a session.
	Save(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by ID.
	// Returns domain.ErrNotFound if the session does not exist or has expired.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all live sessions, oldest first.
	List(ctx context.Context) ([]domain.Session, error)
}
