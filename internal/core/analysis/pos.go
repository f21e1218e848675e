package analysis

import (
	"context"
	"fmt"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// contentCategories carry lexical meaning; the rest are function words.
var contentCategories = map[domain.Category]bool{
	domain.CategoryNoun:       true,
	domain.CategoryProperNoun: true,
	domain.CategoryVerb:       true,
	domain.CategoryAdjective:  true,
	domain.CategoryAdverb:     true,
}

// AnalyzePOS counts the categories the tagger assigns to normalised text.
// A nil tagger returns domain.ErrModelUnavailable.
func AnalyzePOS(ctx context.Context, normalized string, tagger driven.Tagger) (domain.POSCounts, error) {
	tokens, err := Tag(ctx, normalized, tagger)
	if err != nil {
		return nil, err
	}
	return CountPOS(tokens), nil
}

// CountPOS aggregates tagged tokens by category.
func CountPOS(tokens []domain.TaggedToken) domain.POSCounts {
	counts := make(domain.POSCounts)
	for _, tok := range tokens {
		counts[tok.Category]++
	}
	return counts
}

// LexicalDensity returns the share of content words among tagged tokens.
func LexicalDensity(counts domain.POSCounts) float64 {
	total, content := 0, 0
	for c, n := range counts {
		total += n
		if contentCategories[c] {
			content += n
		}
	}
	if total == 0 {
		return 0
	}
	return float64(content) / float64(total)
}

// Tag runs the tagger over normalised text.
// A nil tagger returns domain.ErrModelUnavailable.
func Tag(ctx context.Context, normalized string, tagger driven.Tagger) ([]domain.TaggedToken, error) {
	if tagger == nil {
		return nil, domain.ErrModelUnavailable
	}
	tokens, err := tagger.Tag(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("tagging with %s: %w: %w", tagger.ModelName(), domain.ErrModelUnavailable, err)
	}
	return tokens, nil
}
