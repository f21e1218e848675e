package plaintext

import (
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor handles UTF-8 plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the document format this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPlainText
}

// Extract decodes the content as UTF-8. A leading byte order mark is dropped.
func (e *Extractor) Extract(_ context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	content := bytes.TrimPrefix(doc.Content, utf8BOM)
	if !utf8.Valid(content) {
		return "", domain.ErrDecoding
	}
	return string(content), nil
}
