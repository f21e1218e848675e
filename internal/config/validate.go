package config

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.Extract.MaxBytes <= 0 {
		return errors.New("extract.max_bytes must be positive")
	}
	switch c.Extract.PDFBackend {
	case "native", "pdftotext":
	default:
		return fmt.Errorf("extract.pdf_backend %q must be native or pdftotext", c.Extract.PDFBackend)
	}

	if c.NLP.Model == "" {
		return errors.New("nlp.model is required")
	}

	provider := domain.TranslationProvider(c.Translate.Provider)
	if !provider.IsValid() {
		return fmt.Errorf("translate.provider %q is not one of %v", c.Translate.Provider, domain.AllTranslationProviders())
	}
	if c.Translate.ChunkSize <= 0 {
		return errors.New("translate.chunk_size must be positive")
	}
	if c.Translate.RatePerSecond < 0 {
		return errors.New("translate.rate_per_second must not be negative")
	}
	if c.Translate.RatePerSecond > 0 && c.Translate.Burst <= 0 {
		return errors.New("translate.burst must be positive when rate limiting is enabled")
	}
	if c.Translate.Timeout <= 0 {
		return errors.New("translate.timeout must be positive")
	}
	if _, err := c.Languages(); err != nil {
		return err
	}

	if c.Analysis.Top <= 0 {
		return errors.New("analysis.top must be positive")
	}
	if _, err := c.Categories(); err != nil {
		return err
	}

	if c.Server.SessionTTL < 0 {
		return errors.New("server.session_ttl must not be negative")
	}
	if c.MCP.Port < 0 || c.MCP.Port > 65535 {
		return fmt.Errorf("mcp.port %d is out of range", c.MCP.Port)
	}
	if c.Display.ExpandLimit <= 0 {
		return errors.New("display.expand_limit must be positive")
	}
	return nil
}

// Languages returns the offered translation languages.
func (c *Config) Languages() ([]domain.Language, error) {
	if len(c.Translate.Languages) == 0 {
		return nil, errors.New("translate.languages must list at least one language")
	}
	langs := make([]domain.Language, 0, len(c.Translate.Languages))
	for _, s := range c.Translate.Languages {
		l, err := domain.ParseLanguage(s)
		if err != nil {
			return nil, fmt.Errorf("translate.languages: %w", err)
		}
		langs = append(langs, l)
	}
	return langs, nil
}

// Categories returns the default expansion categories.
func (c *Config) Categories() ([]domain.Category, error) {
	cats, err := domain.ParseCategories(c.Analysis.Categories)
	if err != nil {
		return nil, fmt.Errorf("analysis.categories: %w", err)
	}
	return cats, nil
}
