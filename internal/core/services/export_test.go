package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

func TestExportService_WriteFrequencyCSV(t *testing.T) {
	svc := NewExportService()
	var buf bytes.Buffer

	err := svc.WriteFrequencyCSV(&buf, domain.FrequencyTable{"hund": 2, "der": 3, "katze": 2})

	require.NoError(t, err)
	assert.Equal(t, "Word,Frequency\nder,3\nhund,2\nkatze,2\n", buf.String())
}

func TestExportService_WriteFrequencyCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewExportService().WriteFrequencyCSV(&buf, nil))
	assert.Equal(t, "Word,Frequency\n", buf.String())
}

func TestExportService_WriteFrequencyCSV_QuotesFields(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewExportService().WriteFrequencyCSV(&buf, domain.FrequencyTable{"a,b": 1}))
	assert.Equal(t, "Word,Frequency\n\"a,b\",1\n", buf.String())
}

func TestExportService_WriteTranslation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "utf-8 text", input: "Selamat pagi, dunia – ä", want: "Selamat pagi, dunia – ä"},
		{name: "empty", input: "", wantErr: domain.ErrNothingToExport},
		{name: "whitespace only", input: " \n\t", wantErr: domain.ErrNothingToExport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewExportService().WriteTranslation(&buf, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, buf.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExportService_WriteErrors(t *testing.T) {
	svc := NewExportService()

	assert.Error(t, svc.WriteTranslation(failingWriter{}, "text"))
	assert.Error(t, svc.WriteFrequencyCSV(failingWriter{}, domain.FrequencyTable{"a": 1}))
}
