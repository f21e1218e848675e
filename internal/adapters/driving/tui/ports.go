// Package tui provides the interactive terminal interface for wortlens.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Documents extracts uploaded files and keeps the session.
	Documents driving.DocumentService

	// Analysis computes frequency, parts of speech and category expansion.
	Analysis driving.AnalysisService

	// Translation translates the original text.
	Translation driving.TranslationService

	// Export writes the CSV and text downloads.
	Export driving.ExportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Translation == nil {
		return ErrMissingTranslationService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
