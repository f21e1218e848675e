package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected Format
	}{
		{"txt", "brief.txt", FormatPlainText},
		{"pdf", "/tmp/artikel.pdf", FormatPDF},
		{"docx", "aufsatz.docx", FormatDOCX},
		{"upper case extension", "AUFSATZ.DOCX", FormatDOCX},
		{"csv is unknown", "daten.csv", FormatUnknown},
		{"legacy doc is unknown", "alt.doc", FormatUnknown},
		{"no extension", "README", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFromFilename(tt.filename))
		})
	}
}

func TestFormat_IsSupported(t *testing.T) {
	assert.True(t, FormatPlainText.IsSupported())
	assert.True(t, FormatPDF.IsSupported())
	assert.True(t, FormatDOCX.IsSupported())
	assert.False(t, FormatUnknown.IsSupported())
	assert.Equal(t, "unknown", FormatUnknown.String())
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("text.txt", []byte("Hallo"))

	assert.Equal(t, "text.txt", doc.Name)
	assert.Equal(t, FormatPlainText, doc.Format)
	assert.Equal(t, 5, doc.Size())
}

func TestAcceptedExtensions(t *testing.T) {
	assert.Equal(t, []string{".txt", ".pdf", ".docx"}, AcceptedExtensions())
}
