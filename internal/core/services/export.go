package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService writes frequency tables and translations for download.
type ExportService struct{}

// NewExportService creates a new export service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteFrequencyCSV writes a "Word,Frequency" CSV sorted by descending count.
func (s *ExportService) WriteFrequencyCSV(w io.Writer, table domain.FrequencyTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Word", "Frequency"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range table.Sorted() {
		if err := cw.Write([]string{e.Word, strconv.Itoa(e.Count)}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTranslation writes the translation as UTF-8 text.
func (s *ExportService) WriteTranslation(w io.Writer, translation string) error {
	if strings.TrimSpace(translation) == "" {
		return domain.ErrNothingToExport
	}
	if _, err := io.WriteString(w, translation); err != nil {
		return fmt.Errorf("write translation: %w", err)
	}
	return nil
}
