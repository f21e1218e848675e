package driving

import (
	"context"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// TranslationService translates original text through the configured backend.
type TranslationService interface {
	// Translate returns the translation or an error wrapping domain.ErrTranslation.
	Translate(ctx context.Context, text string, source, target domain.Language) (string, error)

	// TranslateForDisplay never fails: errors are rendered as text beginning with "Error:".
	TranslateForDisplay(ctx context.Context, text string, source, target domain.Language) string

	// Languages returns the language tags offered for translation.
	Languages() []domain.Language

	// Provider returns the active backend name.
	Provider() string
}
