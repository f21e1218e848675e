package driven

import (
	"context"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// Extractor turns the bytes of one document format into text.
type Extractor interface {
	// Format returns the document format this extractor handles.
	Format() domain.Format

	// Extract returns the document's text.
	// Plain text decoding failures return domain.ErrDecoding.
	// Unreadable PDF or DOCX structure returns domain.ErrParse.
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// ExtractorRegistry selects the extractor for a document's format.
type ExtractorRegistry interface {
	// Extract dispatches to the extractor registered for doc.Format.
	// Unknown formats return domain.ErrUnsupportedFormat without attempting extraction.
	Extract(ctx context.Context, doc *domain.Document) (string, error)

	// Register adds an extractor, replacing any previous one for the same format.
	Register(extractor Extractor)

	// SupportedFormats returns the formats that can be extracted.
	SupportedFormats() []domain.Format
}
