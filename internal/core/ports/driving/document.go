package driving

import (
	"context"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// DocumentService loads uploaded documents into sessions.
type DocumentService interface {
	// Extract returns the text of a document without creating a session.
	Extract(ctx context.Context, doc domain.Document) (string, error)

	// Load extracts and normalises a document and stores the result as a session.
	// Extraction errors leave no session behind.
	Load(ctx context.Context, name string, content []byte) (*domain.Session, error)

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// List returns all live sessions.
	List(ctx context.Context) ([]domain.Session, error)

	// SetTranslation records the latest translation on a session.
	SetTranslation(ctx context.Context, id, translation string, source, target domain.Language) error

	// Discard removes a session.
	Discard(ctx context.Context, id string) error
}
