// Package mcp provides an MCP (Model Context Protocol) server adapter for wortlens.
// It lets AI assistants analyse and translate German text through wortlens tools.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

// ErrMissingTranslationService is returned when the translation service is not provided.
var ErrMissingTranslationService = errors.New("mcp: translation service is required")
