package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies how a document's bytes are encoded.
type Format string

// Supported document formats.
const (
	// FormatUnknown is any format wortlens cannot extract.
	FormatUnknown Format = ""

	// FormatPlainText is UTF-8 encoded text (.txt).
	FormatPlainText Format = "plaintext"

	// FormatPDF is a Portable Document Format file (.pdf).
	FormatPDF Format = "pdf"

	// FormatDOCX is an Office Open XML word-processor file (.docx).
	FormatDOCX Format = "docx"
)

// formatExtensions maps lower-cased file extensions to formats.
var formatExtensions = map[string]Format{
	".txt":  FormatPlainText,
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
}

// AcceptedExtensions returns the file extensions that can be extracted, in display order.
func AcceptedExtensions() []string {
	return []string{".txt", ".pdf", ".docx"}
}

// FormatFromFilename derives the format from a file name's extension.
// The comparison is case-insensitive. Unknown extensions yield FormatUnknown.
func FormatFromFilename(name string) Format {
	ext := strings.ToLower(filepath.Ext(name))
	return formatExtensions[ext]
}

// IsSupported returns true if the format can be extracted.
func (f Format) IsSupported() bool {
	switch f {
	case FormatPlainText, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}
	return string(f)
}

// Document is an uploaded file before extraction.
// It is immutable once created and discarded at the end of the session.
type Document struct {
	// Name is the original file name, used to derive the format.
	Name string

	// Format is derived from Name.
	Format Format

	// Content is the raw bytes as uploaded.
	Content []byte
}

// NewDocument creates a document, deriving its format from the file name.
func NewDocument(name string, content []byte) Document {
	return Document{
		Name:    name,
		Format:  FormatFromFilename(name),
		Content: content,
	}
}

// Size returns the number of raw bytes.
func (d Document) Size() int {
	return len(d.Content)
}
