package driven

import (
	"context"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// Tagger is a loaded NLP model that tokenizes and tags text.
// Tokenization is owned by the model; callers must not pre-split text.
type Tagger interface {
	// Tag returns the model's tokens for text, each with its category,
	// in text order.
	Tag(ctx context.Context, text string) ([]domain.TaggedToken, error)

	// ModelName returns the name of the loaded model.
	ModelName() string
}

// ModelInfo describes a loaded NLP model.
type ModelInfo struct {
	// Name is the model identifier (e.g. "de_core_lexicon").
	Name string

	// Language is the language the model tags.
	Language domain.Language

	// Version is the model data version.
	Version string

	// Source records where the model was loaded from: "file", "bundled" or "remote".
	Source string

	// Path is the on-disk location, empty for bundled models.
	Path string

	// Entries is the number of lexicon entries.
	Entries int

	// Rules is the number of suffix rules.
	Rules int
}

// ModelLoader resolves the NLP model once at startup.
// Resolution tries a local copy first, then fetches it from a remote location.
type ModelLoader interface {
	// Load returns the tagger for the configured model.
	// Returns domain.ErrModelUnavailable if every source fails.
	Load(ctx context.Context) (Tagger, ModelInfo, error)

	// Pull fetches the model from the remote location and stores it locally,
	// replacing any existing copy.
	Pull(ctx context.Context) (ModelInfo, error)
}
