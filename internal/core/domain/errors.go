package domain

import (
	"errors"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown backend or provider type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Extraction Errors.

	// ErrUnsupportedFormat indicates the document format cannot be extracted.
	// No extraction was attempted.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDecoding indicates plain text bytes are not valid UTF-8.
	ErrDecoding = errors.New("invalid UTF-8 byte sequence")

	// ErrParse indicates a structured document (PDF, DOCX) is unreadable.
	ErrParse = errors.New("unreadable document structure")

	// Analysis Errors.

	// ErrModelUnavailable indicates the NLP model could not be loaded or invoked.
	// Part-of-speech analysis and category expansion are disabled.
	ErrModelUnavailable = errors.New("NLP model unavailable")

	// Translation Errors.

	// ErrTranslation indicates the translation service failed.
	ErrTranslation = errors.New("translation failed")

	// ErrUnsupportedLanguage indicates a language code is not offered.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// Export Errors.

	// ErrNothingToExport indicates an export was requested before its data exists.
	ErrNothingToExport = errors.New("nothing to export")
)

// IsExtractionError returns true if err came from document extraction.
func IsExtractionError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrDecoding) ||
		errors.Is(err, ErrParse)
}

// UserMessage renders err for display. Extraction failures name the accepted formats.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsExtractionError(err) {
		return err.Error() + ". Use " + strings.Join(AcceptedExtensions(), ", ")
	}
	return err.Error()
}
