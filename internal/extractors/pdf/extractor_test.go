package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

// buildPDF creates a minimal PDF with one Helvetica text line per page.
func buildPDF(pages ...string) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // pages tree, filled below
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	kids := make([]string, 0, len(pages))
	for i, text := range pages {
		pageObj := 4 + 2*i
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageObj+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func pdfDocument(content []byte) *domain.Document {
	doc := domain.NewDocument("artikel.pdf", content)
	return &doc
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.Equal(t, domain.FormatPDF, extractor.Format())
	assert.Equal(t, BackendNative, extractor.Backend())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}

func TestNewForBackend(t *testing.T) {
	native, err := NewForBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendNative, native.Backend())

	native, err = NewForBackend("Native")
	require.NoError(t, err)
	assert.Equal(t, BackendNative, native.Backend())

	_, err = NewForBackend("mupdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestExtract_Native(t *testing.T) {
	content := buildPDF("Hallo Welt", "Zweite Seite")

	text, err := New().Extract(context.Background(), pdfDocument(content))

	require.NoError(t, err)
	assert.Contains(t, text, "Hallo Welt")
	assert.Contains(t, text, "Zweite Seite")
	assert.Less(t, strings.Index(text, "Hallo Welt"), strings.Index(text, "Zweite Seite"))
	assert.True(t, strings.HasSuffix(text, "\n"))
}

func TestExtract_NativeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "not a pdf", content: []byte("this is not a pdf")},
		{name: "truncated", content: buildPDF("Hallo")[:40]},
		{name: "empty", content: []byte{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, err := New().Extract(context.Background(), pdfDocument(tc.content))
			assert.ErrorIs(t, err, domain.ErrParse)
			assert.Empty(t, text)
		})
	}
}

func TestExtract_WithMockRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("Seite eins\n\fSeite zwei\n\f")}
	extractor := NewWithRunner(runner)

	text, err := extractor.Extract(context.Background(), pdfDocument([]byte("%PDF-1.4")))

	require.NoError(t, err)
	assert.Equal(t, "Seite eins\nSeite zwei\n", text)
	assert.Equal(t, "pdftotext", runner.name)
	assert.Contains(t, runner.args, "-enc")
	assert.Equal(t, "-", runner.args[len(runner.args)-1])
	assert.Equal(t, BackendPDFToText, extractor.Backend())
}

func TestExtract_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("pdftotext crashed")}

	_, err := NewWithRunner(runner).Extract(context.Background(), pdfDocument([]byte("%PDF")))

	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "pdftotext failed")
}

func TestExtract_ToolMissing(t *testing.T) {
	runner := &mockRunner{err: ErrPDFToolNotFound}

	_, err := NewWithRunner(runner).Extract(context.Background(), pdfDocument([]byte("%PDF")))

	assert.ErrorIs(t, err, ErrPDFToolNotFound)
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []string
	}{
		{name: "empty", output: "", expected: nil},
		{name: "single page", output: "eins\n\f", expected: []string{"eins"}},
		{name: "blank middle page", output: "eins\f\fdrei\f", expected: []string{"eins", "", "drei"}},
		{name: "no trailing form feed", output: "eins\fzwei", expected: []string{"eins", "zwei"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, splitPages(tc.output))
		})
	}
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

// Integration test - only runs if pdftotext is available.
func TestExtract_PDFToTextIntegration(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not available, skipping integration test")
	}

	extractor, err := NewForBackend("pdftotext")
	require.NoError(t, err)

	text, err := extractor.Extract(context.Background(), pdfDocument(buildPDF("Hallo Welt")))
	require.NoError(t, err)
	assert.Contains(t, text, "Hallo Welt")
}
