package tui

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// ErrMissingTranslationService is returned when the translation service is not provided.
var ErrMissingTranslationService = errors.New("tui: translation service is required")

// ErrMissingExportService is returned when the export service is not provided.
var ErrMissingExportService = errors.New("tui: export service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// ErrNoDocument is returned when an action needs a loaded document.
var ErrNoDocument = errors.New("tui: no document loaded")
