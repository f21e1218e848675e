package analysis

import (
	"context"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// ExpandByCategory groups tagged tokens by the requested categories.
// Every requested category is present in the result; categories without a
// matching token map to an empty slice. Tokens keep the tagger's order and
// duplicates are retained.
func ExpandByCategory(
	ctx context.Context,
	normalized string,
	tagger driven.Tagger,
	categories []domain.Category,
) (domain.CategoryMap, error) {
	tokens, err := Tag(ctx, normalized, tagger)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(tokens, categories), nil
}

// GroupByCategory is ExpandByCategory over already tagged tokens.
func GroupByCategory(tokens []domain.TaggedToken, categories []domain.Category) domain.CategoryMap {
	result := make(domain.CategoryMap, len(categories))
	for _, c := range categories {
		result[c] = []string{}
	}
	for _, tok := range tokens {
		if words, ok := result[tok.Category]; ok {
			result[tok.Category] = append(words, tok.Text)
		}
	}
	return result
}
