package services

import (
	"context"
	"unicode/utf8"

	"github.com/custodia-labs/wortlens/internal/core/analysis"
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
	"github.com/custodia-labs/wortlens/internal/segment"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs the frequency, POS and expansion analyses.
type AnalysisService struct {
	tagger     driven.Tagger
	categories []domain.Category
}

// NewAnalysisService creates an analysis service. tagger may be nil, in which
// case POS analysis and expansion return domain.ErrModelUnavailable.
func NewAnalysisService(tagger driven.Tagger, defaultCategories []domain.Category) *AnalysisService {
	if len(defaultCategories) == 0 {
		defaultCategories = domain.DefaultCategories()
	}
	return &AnalysisService{tagger: tagger, categories: defaultCategories}
}

// Frequency counts every whitespace-delimited token.
func (s *AnalysisService) Frequency(ctx context.Context, normalized string) (domain.FrequencyTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return analysis.AnalyzeFrequency(normalized), nil
}

// POS counts the categories the NLP model assigns.
func (s *AnalysisService) POS(ctx context.Context, normalized string) (domain.POSCounts, error) {
	return analysis.AnalyzePOS(ctx, normalized, s.tagger)
}

// Expand groups the model's tokens by the requested categories.
func (s *AnalysisService) Expand(
	ctx context.Context,
	normalized string,
	categories []domain.Category,
) (domain.CategoryMap, error) {
	if len(categories) == 0 {
		categories = s.categories
	}
	return analysis.ExpandByCategory(ctx, normalized, s.tagger, categories)
}

// Report combines statistics, frequency, POS counts and expansion.
// The text is tagged at most once.
func (s *AnalysisService) Report(
	ctx context.Context,
	text, normalized string,
	opts domain.ReportOptions,
) (*domain.Report, error) {
	freq, err := s.Frequency(ctx, normalized)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Stats: domain.TextStats{
			Characters:     utf8.RuneCountInString(text),
			Sentences:      segment.Count(text),
			Tokens:         freq.Total(),
			DistinctTokens: len(freq),
		},
		Frequency: freq.Top(opts.Top),
	}

	if !opts.IncludePOS && len(opts.Categories) == 0 {
		return report, nil
	}

	tokens, err := analysis.Tag(ctx, normalized, s.tagger)
	if err != nil {
		return nil, err
	}
	counts := analysis.CountPOS(tokens)
	report.Stats.LexicalDensity = analysis.LexicalDensity(counts)
	if opts.IncludePOS {
		report.POS = counts.Sorted()
	}
	if len(opts.Categories) > 0 {
		report.Categories = analysis.GroupByCategory(tokens, opts.Categories)
	}
	return report, nil
}

// ModelAvailable returns true if POS analysis can run.
func (s *AnalysisService) ModelAvailable() bool {
	return s.tagger != nil
}

// DefaultCategories returns the categories used when a request names none.
func (s *AnalysisService) DefaultCategories() []domain.Category {
	return append([]domain.Category(nil), s.categories...)
}
