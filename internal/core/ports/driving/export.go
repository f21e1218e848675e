package driving

import (
	"io"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// Default export file names.
const (
	DefaultFrequencyFile   = "word_frequency.csv"
	DefaultTranslationFile = "translated_text.txt"
)

// ExportService serialises analysis results for download.
type ExportService interface {
	// WriteFrequencyCSV writes a "Word,Frequency" CSV sorted by descending count.
	WriteFrequencyCSV(w io.Writer, table domain.FrequencyTable) error

	// WriteTranslation writes the translation as UTF-8 text.
	// Returns domain.ErrNothingToExport for an empty translation.
	WriteTranslation(w io.Writer, translation string) error
}
