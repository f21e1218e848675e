package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Analysis == nil {
		ports.Analysis = &mockAnalysisService{}
	}
	if ports.Translation == nil {
		ports.Translation = &mockTranslationService{}
	}
	server, err := NewServer(ports, Defaults{Top: 5, Source: "de", Target: "id"})
	require.NoError(t, err)
	return server
}

func TestServer_handleAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report", func(t *testing.T) {
		analysis := &mockAnalysisService{
			model: true,
			report: &domain.Report{
				Stats:      domain.TextStats{Characters: 15, Sentences: 1, Tokens: 3, DistinctTokens: 3},
				Frequency:  []domain.FrequencyEntry{{Word: "hund", Count: 1}},
				POS:        []domain.POSEntry{{Category: domain.CategoryNoun, Count: 1}},
				Categories: domain.CategoryMap{domain.CategoryNoun: {"hund"}},
			},
		}
		server := newTestServer(t, &Ports{Analysis: analysis})

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{
			Text:       "Der Hund läuft.",
			Categories: []string{"noun"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Der Hund läuft.", analysis.lastText)
		assert.Equal(t, "der hund läuft", analysis.lastNormal)
		assert.Equal(t, 5, analysis.lastOpts.Top)
		assert.True(t, analysis.lastOpts.IncludePOS)
		assert.Equal(t, []domain.Category{domain.CategoryNoun}, analysis.lastOpts.Categories)

		assert.True(t, output.Model)
		assert.Equal(t, 3, output.Stats.Tokens)
		assert.Equal(t, []FrequencyOutput{{Word: "hund", Count: 1}}, output.Frequency)
		assert.Equal(t, []POSOutput{{Category: "NOUN", Count: 1}}, output.POS)
		assert.Equal(t, map[string][]string{"NOUN": {"hund"}}, output.Categories)
	})

	t.Run("without model skips tagging", func(t *testing.T) {
		analysis := &mockAnalysisService{report: &domain.Report{}}
		server := newTestServer(t, &Ports{Analysis: analysis})

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "Hallo", Top: 3, Categories: []string{"VERB"}})
		require.NoError(t, err)
		assert.False(t, output.Model)
		assert.False(t, analysis.lastOpts.IncludePOS)
		assert.Empty(t, analysis.lastOpts.Categories)
		assert.Equal(t, 3, analysis.lastOpts.Top)
	})

	t.Run("reads a loaded document", func(t *testing.T) {
		analysis := &mockAnalysisService{report: &domain.Report{}}
		docs := newMockDocumentService(&domain.Session{ID: "doc-1", Text: "Hallo Welt.", Normalized: "hallo welt"})
		server := newTestServer(t, &Ports{Analysis: analysis, Documents: docs})

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{DocumentID: "doc-1"})
		require.NoError(t, err)
		assert.Equal(t, "hallo welt", analysis.lastNormal)
	})

	t.Run("requires text", func(t *testing.T) {
		server := newTestServer(t, &Ports{})
		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown document", func(t *testing.T) {
		server := newTestServer(t, &Ports{Documents: newMockDocumentService()})
		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{DocumentID: "missing"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returns error on analysis failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Analysis: &mockAnalysisService{err: errors.New("analysis failed")}})
		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "Hallo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "analysis failed")
	})
}

func TestServer_handleExpand(t *testing.T) {
	ctx := context.Background()

	t.Run("groups words", func(t *testing.T) {
		analysis := &mockAnalysisService{groups: domain.CategoryMap{
			domain.CategoryVerb: {"läuft"},
		}}
		server := newTestServer(t, &Ports{Analysis: analysis})

		_, output, err := server.handleExpand(ctx, nil, ExpandInput{Text: "Der Hund läuft!", Categories: []string{"verb"}})
		require.NoError(t, err)
		assert.Equal(t, "der hund läuft", analysis.lastNormal)
		assert.Equal(t, map[string][]string{"VERB": {"läuft"}}, output.Categories)
	})

	t.Run("model unavailable", func(t *testing.T) {
		server := newTestServer(t, &Ports{Analysis: &mockAnalysisService{err: domain.ErrModelUnavailable}})
		_, _, err := server.handleExpand(ctx, nil, ExpandInput{Text: "Hallo"})
		assert.ErrorIs(t, err, domain.ErrModelUnavailable)
	})
}

func TestServer_handleTranslate(t *testing.T) {
	ctx := context.Background()

	t.Run("uses defaults", func(t *testing.T) {
		translation := &mockTranslationService{}
		server := newTestServer(t, &Ports{Translation: translation})

		_, output, err := server.handleTranslate(ctx, nil, TranslateInput{Text: "hallo"})
		require.NoError(t, err)
		assert.Equal(t, "HALLO", output.Text)
		assert.Equal(t, "de", output.Source)
		assert.Equal(t, "id", output.Target)
		assert.Equal(t, "mock", output.Provider)
	})

	t.Run("stores translation on document", func(t *testing.T) {
		docs := newMockDocumentService(&domain.Session{ID: "doc-1", Text: "hallo"})
		server := newTestServer(t, &Ports{Documents: docs})

		_, output, err := server.handleTranslate(ctx, nil, TranslateInput{DocumentID: "doc-1", Target: "en"})
		require.NoError(t, err)
		assert.Equal(t, "en", output.Target)
		assert.Equal(t, "HALLO", docs.sessions["doc-1"].Translation)
		assert.Equal(t, domain.Language("en"), docs.sessions["doc-1"].TranslationTarget)
	})

	t.Run("failure becomes error text", func(t *testing.T) {
		cause := fmt.Errorf("%w: service unreachable", domain.ErrTranslation)
		docs := newMockDocumentService(&domain.Session{ID: "doc-1", Text: "hallo"})
		server := newTestServer(t, &Ports{Documents: docs, Translation: &mockTranslationService{err: cause}})

		_, output, err := server.handleTranslate(ctx, nil, TranslateInput{DocumentID: "doc-1"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(output.Text, "Error:"), output.Text)
		assert.Contains(t, output.Text, "service unreachable")
		assert.Equal(t, cause.Error(), output.Error)
		assert.Empty(t, docs.sessions["doc-1"].Translation, "failure text is not stored")
	})

	t.Run("unsupported language is a tool error", func(t *testing.T) {
		translation := &mockTranslationService{err: domain.ErrUnsupportedLanguage}
		server := newTestServer(t, &Ports{Translation: translation})

		_, _, err := server.handleTranslate(ctx, nil, TranslateInput{Text: "hallo", Target: "xx"})
		assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
	})
}

func TestServer_handleLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "brief.txt")
	require.NoError(t, os.WriteFile(path, []byte("Liebe Grüße"), 0600))

	t.Run("loads file", func(t *testing.T) {
		docs := newMockDocumentService()
		server := newTestServer(t, &Ports{Documents: docs})

		_, output, err := server.handleLoad(ctx, nil, LoadInput{Path: path})
		require.NoError(t, err)
		assert.Equal(t, "brief.txt", output.Name)
		assert.Equal(t, "plaintext", output.Format)
		assert.Equal(t, 11, output.Characters)
		assert.Contains(t, docs.sessions, output.DocumentID)
	})

	t.Run("missing path", func(t *testing.T) {
		server := newTestServer(t, &Ports{Documents: newMockDocumentService()})
		_, _, err := server.handleLoad(ctx, nil, LoadInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing file", func(t *testing.T) {
		server := newTestServer(t, &Ports{Documents: newMockDocumentService()})
		_, _, err := server.handleLoad(ctx, nil, LoadInput{Path: filepath.Join(dir, "nope.txt")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported format", func(t *testing.T) {
		csv := filepath.Join(dir, "data.csv")
		require.NoError(t, os.WriteFile(csv, []byte("a,b"), 0600))

		server := newTestServer(t, &Ports{Documents: newMockDocumentService()})
		_, _, err := server.handleLoad(ctx, nil, LoadInput{Path: csv})
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})
}
