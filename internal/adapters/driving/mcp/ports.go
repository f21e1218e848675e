package mcp

import (
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Analysis computes frequency, POS and category reports.
	Analysis driving.AnalysisService

	// Translation translates text.
	Translation driving.TranslationService

	// Documents loads documents into sessions. Optional; without it the
	// load_document tool and document resources are not registered.
	Documents driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Translation == nil {
		return ErrMissingTranslationService
	}
	return nil
}

// Defaults are used when a tool call leaves a field empty.
type Defaults struct {
	Top    int
	Source domain.Language
	Target domain.Language
}
