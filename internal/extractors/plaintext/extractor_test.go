package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, domain.FormatPlainText, New().Format())
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected string
	}{
		{name: "ascii", content: []byte("Hallo Welt"), expected: "Hallo Welt"},
		{name: "umlauts", content: []byte("Grüße aus Köln"), expected: "Grüße aus Köln"},
		{name: "byte order mark stripped", content: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Text")...), expected: "Text"},
		{name: "empty", content: []byte{}, expected: ""},
		{name: "line endings kept", content: []byte("a\r\nb\n"), expected: "a\r\nb\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := domain.NewDocument("text.txt", tc.content)
			text, err := New().Extract(context.Background(), &doc)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, text)
		})
	}
}

func TestExtract_InvalidUTF8(t *testing.T) {
	// Latin-1 encoded "Grüße".
	doc := domain.NewDocument("latin1.txt", []byte{'G', 'r', 0xFC, 0xDF, 'e'})

	text, err := New().Extract(context.Background(), &doc)

	assert.ErrorIs(t, err, domain.ErrDecoding)
	assert.Empty(t, text)
}

func TestExtract_NilDocument(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
