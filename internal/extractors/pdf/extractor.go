package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Backend selects how PDF text is extracted.
type Backend string

const (
	// BackendNative parses the PDF in-process.
	BackendNative Backend = "native"

	// BackendPDFToText runs the poppler pdftotext tool.
	BackendPDFToText Backend = "pdftotext"
)

// pageExtractor returns the text of every page in order.
type pageExtractor func(ctx context.Context, content []byte) ([]string, error)

// Extractor handles PDF documents.
type Extractor struct {
	backend Backend
	pages   pageExtractor
}

// New creates a PDF extractor using the native backend.
func New() *Extractor {
	return &Extractor{backend: BackendNative, pages: nativePages}
}

// NewWithRunner creates a PDF extractor that runs pdftotext through runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{
		backend: BackendPDFToText,
		pages: func(ctx context.Context, content []byte) ([]string, error) {
			return pdftotextPages(ctx, runner, content)
		},
	}
}

// NewForBackend creates a PDF extractor for a configured backend name.
// An empty name selects the native backend.
func NewForBackend(backend string) (*Extractor, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(backend))) {
	case "", BackendNative:
		return New(), nil
	case BackendPDFToText:
		if err := CheckAvailable(); err != nil {
			return nil, err
		}
		return NewWithRunner(execRunner{}), nil
	default:
		return nil, fmt.Errorf("pdf backend %q: %w", backend, domain.ErrUnsupportedType)
	}
}

// Format returns the document format this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPDF
}

// Backend returns the active backend.
func (e *Extractor) Backend() Backend {
	return e.backend
}

// Extract returns the text of every page in order, each followed by a newline.
func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	pages, err := e.pages(ctx, doc.Content)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, page := range pages {
		b.WriteString(page)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
