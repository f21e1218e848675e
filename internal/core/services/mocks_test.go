package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// mockTagger tags tokens from a fixed table; unknown tokens are X.
type mockTagger struct {
	tags  map[string]domain.Category
	err   error
	calls int
	mu    sync.Mutex
}

var _ driven.Tagger = (*mockTagger)(nil)

func newMockTagger() *mockTagger {
	return &mockTagger{tags: map[string]domain.Category{
		"der":     domain.CategoryDeterminer,
		"die":     domain.CategoryDeterminer,
		"hund":    domain.CategoryNoun,
		"katze":   domain.CategoryNoun,
		"läuft":   domain.CategoryVerb,
		"schläft": domain.CategoryVerb,
		"schnell": domain.CategoryAdjective,
	}}
}

func (m *mockTagger) Tag(_ context.Context, text string) ([]domain.TaggedToken, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var tokens []domain.TaggedToken
	for i, word := range strings.Fields(text) {
		cat, ok := m.tags[word]
		if !ok {
			cat = domain.CategoryOther
		}
		tokens = append(tokens, domain.TaggedToken{Text: word, Category: cat, Index: i})
	}
	return tokens, nil
}

func (m *mockTagger) ModelName() string { return "mock" }

// mockTranslator upper-cases text and records requests.
type mockTranslator struct {
	err      error
	requests []domain.TranslationRequest
	block    bool
}

var _ driven.Translator = (*mockTranslator)(nil)

func (m *mockTranslator) Translate(ctx context.Context, req domain.TranslationRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.err != nil {
		return "", m.err
	}
	return strings.ToUpper(req.Text), nil
}

func (m *mockTranslator) Name() string { return "mock" }

func (m *mockTranslator) Close() error { return nil }

// mockExtractor returns its content as text.
type mockExtractor struct {
	format domain.Format
	err    error
}

func (m *mockExtractor) Format() domain.Format { return m.format }

func (m *mockExtractor) Extract(_ context.Context, doc *domain.Document) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return string(doc.Content), nil
}
