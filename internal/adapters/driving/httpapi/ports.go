// Package httpapi exposes wortlens over a JSON HTTP API built on gin.
//
// A document is uploaded once and kept as a session; analysis, translation
// and export endpoints address it by session ID.
package httpapi

import (
	"errors"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
)

// ErrMissingService is returned when a required port is not provided.
var ErrMissingService = errors.New("httpapi: documents, analysis, translation and export services are required")

// Ports aggregates the driving ports used by the HTTP API.
type Ports struct {
	Documents   driving.DocumentService
	Analysis    driving.AnalysisService
	Translation driving.TranslationService
	Export      driving.ExportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Documents == nil || p.Analysis == nil || p.Translation == nil || p.Export == nil {
		return ErrMissingService
	}
	return nil
}

// Config holds request defaults and server options.
type Config struct {
	// MaxUploadBytes bounds the multipart body.
	MaxUploadBytes int64

	// CORSOrigins are the allowed browser origins. "*" allows any.
	CORSOrigins []string

	// Top is the default number of frequency rows.
	Top int

	// Source and Target are the default translation languages.
	Source domain.Language
	Target domain.Language

	// JSONLogs switches the request log to JSON.
	JSONLogs bool
}
