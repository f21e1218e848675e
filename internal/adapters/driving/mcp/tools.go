package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wortlens/internal/core/analysis"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_text tool.
type AnalyzeInput struct {
	Text       string   `json:"text,omitempty" jsonschema:"German text to analyse"`
	DocumentID string   `json:"document_id,omitempty" jsonschema:"session ID returned by load_document, used instead of text"`
	Top        int      `json:"top,omitempty" jsonschema:"number of most frequent words to return (default 10)"`
	Categories []string `json:"categories,omitempty" jsonschema:"categories to expand, e.g. NOUN, VERB, ADJ"`
}

// AnalyzeOutput is the output schema for the analyze_text tool.
type AnalyzeOutput struct {
	Stats      domain.TextStats    `json:"stats"`
	Frequency  []FrequencyOutput   `json:"frequency"`
	POS        []POSOutput         `json:"pos,omitempty"`
	Categories map[string][]string `json:"categories,omitempty"`
	Model      bool                `json:"model_available"`
}

// FrequencyOutput is one row of the frequency table.
type FrequencyOutput struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// POSOutput is the count of one part-of-speech category.
type POSOutput struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ExpandInput is the input schema for the expand_categories tool.
type ExpandInput struct {
	Text       string   `json:"text,omitempty" jsonschema:"German text to analyse"`
	DocumentID string   `json:"document_id,omitempty" jsonschema:"session ID returned by load_document, used instead of text"`
	Categories []string `json:"categories,omitempty" jsonschema:"categories to expand (default NOUN, VERB, ADJ)"`
}

// ExpandOutput is the output schema for the expand_categories tool.
type ExpandOutput struct {
	Categories map[string][]string `json:"categories"`
}

// TranslateInput is the input schema for the translate_text tool.
type TranslateInput struct {
	Text       string `json:"text,omitempty" jsonschema:"text to translate"`
	DocumentID string `json:"document_id,omitempty" jsonschema:"session ID returned by load_document, used instead of text"`
	Source     string `json:"source,omitempty" jsonschema:"source language tag (default de)"`
	Target     string `json:"target,omitempty" jsonschema:"target language tag (default id)"`
}

// TranslateOutput is the output schema for the translate_text tool.
type TranslateOutput struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Provider string `json:"provider"`
	Error    string `json:"error,omitempty"`
}

// LoadInput is the input schema for the load_document tool.
type LoadInput struct {
	Path string `json:"path" jsonschema:"path of a .txt, .pdf or .docx file"`
}

// LoadOutput is the output schema for the load_document tool.
type LoadOutput struct {
	DocumentID string `json:"document_id"`
	Name       string `json:"name"`
	Format     string `json:"format"`
	Characters int    `json:"characters"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_text",
		Description: "Word frequency, part-of-speech counts and text statistics for German text",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "expand_categories",
		Description: "List the words of German text grouped by grammatical category",
	}, s.handleExpand)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "translate_text",
		Description: "Translate text between the configured languages",
	}, s.handleTranslate)

	if s.ports.Documents != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "load_document",
			Description: "Extract the text of a local .txt, .pdf or .docx file and keep it for later tool calls",
		}, s.handleLoad)
	}
}

// handleAnalyze handles the analyze_text tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	text, normalized, err := s.resolveText(ctx, input.Text, input.DocumentID)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	categories, err := domain.ParseCategories(input.Categories)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	top := input.Top
	if top <= 0 {
		top = s.defaults.Top
	}

	model := s.ports.Analysis.ModelAvailable()
	opts := domain.ReportOptions{Top: top, IncludePOS: model}
	if model {
		opts.Categories = categories
	}

	report, err := s.ports.Analysis.Report(ctx, text, normalized, opts)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	output := AnalyzeOutput{
		Stats:      report.Stats,
		Frequency:  make([]FrequencyOutput, len(report.Frequency)),
		Categories: categoryOutput(report.Categories),
		Model:      model,
	}
	for i, e := range report.Frequency {
		output.Frequency[i] = FrequencyOutput{Word: e.Word, Count: e.Count}
	}
	for _, e := range report.POS {
		output.POS = append(output.POS, POSOutput{Category: e.Category.String(), Count: e.Count})
	}
	return nil, output, nil
}

// handleExpand handles the expand_categories tool invocation.
func (s *Server) handleExpand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExpandInput,
) (*mcp.CallToolResult, ExpandOutput, error) {
	_, normalized, err := s.resolveText(ctx, input.Text, input.DocumentID)
	if err != nil {
		return nil, ExpandOutput{}, err
	}
	categories, err := domain.ParseCategories(input.Categories)
	if err != nil {
		return nil, ExpandOutput{}, err
	}

	groups, err := s.ports.Analysis.Expand(ctx, normalized, categories)
	if err != nil {
		return nil, ExpandOutput{}, err
	}
	return nil, ExpandOutput{Categories: categoryOutput(groups)}, nil
}

// handleTranslate handles the translate_text tool invocation.
func (s *Server) handleTranslate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TranslateInput,
) (*mcp.CallToolResult, TranslateOutput, error) {
	text, _, err := s.resolveText(ctx, input.Text, input.DocumentID)
	if err != nil {
		return nil, TranslateOutput{}, err
	}

	source, target := s.defaults.Source, s.defaults.Target
	if input.Source != "" {
		source = domain.Language(input.Source)
	}
	if input.Target != "" {
		target = domain.Language(input.Target)
	}

	out := TranslateOutput{
		Source:   source.String(),
		Target:   target.String(),
		Provider: s.ports.Translation.Provider(),
	}

	translated, err := s.ports.Translation.Translate(ctx, text, source, target)
	switch {
	case errors.Is(err, domain.ErrUnsupportedLanguage), errors.Is(err, domain.ErrInvalidInput):
		return nil, TranslateOutput{}, err
	case err != nil:
		// Failed translations are reported in place of the text.
		out.Text = domain.TranslationFailureText(err)
		out.Error = err.Error()
		return nil, out, nil
	}
	out.Text = translated

	if input.DocumentID != "" && s.ports.Documents != nil {
		if err := s.ports.Documents.SetTranslation(ctx, input.DocumentID, translated, source, target); err != nil {
			return nil, TranslateOutput{}, err
		}
	}

	return nil, out, nil
}

// handleLoad handles the load_document tool invocation.
func (s *Server) handleLoad(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadInput,
) (*mcp.CallToolResult, LoadOutput, error) {
	if input.Path == "" {
		return nil, LoadOutput{}, fmt.Errorf("path is required: %w", domain.ErrInvalidInput)
	}
	content, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, LoadOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	session, err := s.ports.Documents.Load(ctx, filepath.Base(input.Path), content)
	if err != nil {
		return nil, LoadOutput{}, fmt.Errorf("loading %s: %w", input.Path, err)
	}

	return nil, LoadOutput{
		DocumentID: session.ID,
		Name:       session.Name,
		Format:     session.Format.String(),
		Characters: utf8.RuneCountInString(session.Text),
	}, nil
}

// resolveText returns the original and normalised text of a tool call,
// reading a loaded document when documentID is set.
func (s *Server) resolveText(ctx context.Context, text, documentID string) (string, string, error) {
	if documentID != "" {
		if s.ports.Documents == nil {
			return "", "", fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
		}
		session, err := s.ports.Documents.Get(ctx, documentID)
		if err != nil {
			return "", "", err
		}
		return session.Text, session.Normalized, nil
	}
	if text == "" {
		return "", "", fmt.Errorf("text or document_id is required: %w", domain.ErrInvalidInput)
	}
	return text, analysis.Normalize(text), nil
}

func categoryOutput(m domain.CategoryMap) map[string][]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m))
	for c, words := range m {
		out[c.String()] = words
	}
	return out
}
