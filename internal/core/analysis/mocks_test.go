package analysis

import (
	"context"
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// mockTagger tags whitespace tokens from a fixed word list.
type mockTagger struct {
	tags     map[string]domain.Category
	fallback domain.Category
	err      error
	calls    int
}

var _ driven.Tagger = (*mockTagger)(nil)

func newMockTagger(tags map[string]domain.Category) *mockTagger {
	return &mockTagger{tags: tags, fallback: domain.CategoryOther}
}

func (m *mockTagger) Tag(_ context.Context, text string) ([]domain.TaggedToken, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var tokens []domain.TaggedToken
	for i, word := range strings.Fields(text) {
		c, ok := m.tags[word]
		if !ok {
			c = m.fallback
		}
		tokens = append(tokens, domain.TaggedToken{Text: word, Category: c, Index: i})
	}
	return tokens, nil
}

func (m *mockTagger) ModelName() string { return "mock" }

func germanTagger() *mockTagger {
	return newMockTagger(map[string]domain.Category{
		"der":   domain.CategoryDeterminer,
		"die":   domain.CategoryDeterminer,
		"hund":  domain.CategoryNoun,
		"katze": domain.CategoryNoun,
		"läuft": domain.CategoryVerb,
		"bellt": domain.CategoryVerb,
		"große": domain.CategoryAdjective,
	})
}
