package driven

import (
	"context"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// Translator translates text between languages.
// Implementations include the Google web endpoint and LLM chat backends.
type Translator interface {
	// Translate returns req.Text rendered in req.Target.
	// Failures are wrapped in domain.ErrTranslation.
	Translate(ctx context.Context, req domain.TranslationRequest) (string, error)

	// Name returns the backend identifier (e.g. "google").
	Name() string

	// Close releases resources.
	Close() error
}
