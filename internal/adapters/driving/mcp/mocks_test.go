package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	model      bool
	report     *domain.Report
	groups     domain.CategoryMap
	err        error
	lastOpts   domain.ReportOptions
	lastText   string
	lastNormal string
}

func (m *mockAnalysisService) Frequency(_ context.Context, normalized string) (domain.FrequencyTable, error) {
	m.lastNormal = normalized
	return domain.FrequencyTable{}, m.err
}

func (m *mockAnalysisService) POS(_ context.Context, _ string) (domain.POSCounts, error) {
	return domain.POSCounts{}, m.err
}

func (m *mockAnalysisService) Expand(
	_ context.Context,
	normalized string,
	_ []domain.Category,
) (domain.CategoryMap, error) {
	m.lastNormal = normalized
	return m.groups, m.err
}

func (m *mockAnalysisService) Report(
	_ context.Context,
	text, normalized string,
	opts domain.ReportOptions,
) (*domain.Report, error) {
	m.lastText = text
	m.lastNormal = normalized
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockAnalysisService) ModelAvailable() bool {
	return m.model
}

// mockTranslationService is a mock implementation of driving.TranslationService.
type mockTranslationService struct {
	err        error
	lastSource domain.Language
	lastTarget domain.Language
}

func (m *mockTranslationService) Translate(
	_ context.Context,
	text string,
	source, target domain.Language,
) (string, error) {
	m.lastSource, m.lastTarget = source, target
	if m.err != nil {
		return "", m.err
	}
	return strings.ToUpper(text), nil
}

func (m *mockTranslationService) TranslateForDisplay(
	ctx context.Context,
	text string,
	source, target domain.Language,
) string {
	out, err := m.Translate(ctx, text, source, target)
	if err != nil {
		return domain.TranslationFailureText(err)
	}
	return out
}

func (m *mockTranslationService) Languages() []domain.Language {
	return domain.DefaultLanguages()
}

func (m *mockTranslationService) Provider() string {
	return "mock"
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	sessions map[string]*domain.Session
	err      error
}

func newMockDocumentService(sessions ...*domain.Session) *mockDocumentService {
	m := &mockDocumentService{sessions: make(map[string]*domain.Session)}
	for _, s := range sessions {
		m.sessions[s.ID] = s
	}
	return m
}

func (m *mockDocumentService) Extract(_ context.Context, doc domain.Document) (string, error) {
	return string(doc.Content), m.err
}

func (m *mockDocumentService) Load(_ context.Context, name string, content []byte) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc := domain.NewDocument(name, content)
	if !doc.Format.IsSupported() {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrUnsupportedFormat)
	}
	s := &domain.Session{
		ID:     fmt.Sprintf("doc-%d", len(m.sessions)+1),
		Name:   name,
		Format: doc.Format,
		Size:   len(content),
		Text:   string(content),
	}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockDocumentService) SetTranslation(
	_ context.Context,
	id, translation string,
	source, target domain.Language,
) error {
	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Translation = translation
	s.TranslationSource = source
	s.TranslationTarget = target
	return nil
}

func (m *mockDocumentService) Discard(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}
