package driving

import (
	"context"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// AnalysisService computes statistics over normalised text.
type AnalysisService interface {
	// Frequency counts every whitespace-delimited token.
	Frequency(ctx context.Context, normalized string) (domain.FrequencyTable, error)

	// POS counts the categories the NLP model assigns.
	// Returns domain.ErrModelUnavailable when no model is loaded.
	POS(ctx context.Context, normalized string) (domain.POSCounts, error)

	// Expand groups the model's tokens by the requested categories.
	// An empty request uses the configured default categories.
	Expand(ctx context.Context, normalized string, categories []domain.Category) (domain.CategoryMap, error)

	// Report combines statistics, frequency, POS counts and expansion.
	// text is the original text and is used for sentence statistics.
	Report(ctx context.Context, text, normalized string, opts domain.ReportOptions) (*domain.Report, error)

	// ModelAvailable returns true if POS analysis can run.
	ModelAvailable() bool
}
