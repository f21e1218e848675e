package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
	"github.com/custodia-labs/wortlens/internal/logger"
)

// Ensure TranslationService implements the interface.
var _ driving.TranslationService = (*TranslationService)(nil)

// TranslationConfig configures the translation service.
type TranslationConfig struct {
	// Languages are the tags accepted as source and target. Empty uses the defaults.
	Languages []domain.Language

	// Timeout bounds one translation. Zero disables the bound.
	Timeout time.Duration

	// RatePerSecond limits backend calls. Zero disables the limiter.
	RatePerSecond float64

	// Burst is the limiter's bucket size.
	Burst int
}

// TranslationService validates requests and delegates to a translator backend.
type TranslationService struct {
	translator driven.Translator
	languages  []domain.Language
	timeout    time.Duration
	limiter    *rate.Limiter
}

// NewTranslationService creates a translation service. translator may be nil,
// in which case every request fails with domain.ErrTranslation.
func NewTranslationService(translator driven.Translator, cfg TranslationConfig) *TranslationService {
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = domain.DefaultLanguages()
	}
	s := &TranslationService{
		translator: translator,
		languages:  append([]domain.Language(nil), langs...),
		timeout:    cfg.Timeout,
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return s
}

// Translate returns the translation or an error wrapping domain.ErrTranslation.
func (s *TranslationService) Translate(ctx context.Context, text string, source, target domain.Language) (string, error) {
	if err := s.checkLanguage(source); err != nil {
		return "", err
	}
	if err := s.checkLanguage(target); err != nil {
		return "", err
	}
	if s.translator == nil {
		return "", fmt.Errorf("%w: no translation backend configured", domain.ErrTranslation)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrTranslation, err)
		}
	}

	start := time.Now()
	out, err := s.translator.Translate(ctx, domain.TranslationRequest{Text: text, Source: source, Target: target})
	if err != nil {
		if !errors.Is(err, domain.ErrTranslation) {
			err = fmt.Errorf("%w: %w", domain.ErrTranslation, err)
		}
		return "", err
	}
	logger.Debug("Translated %d chars %s->%s with %s in %s", len(text), source, target, s.translator.Name(), time.Since(start))
	return out, nil
}

// TranslateForDisplay never fails: errors are rendered as text beginning with "Error: ".
func (s *TranslationService) TranslateForDisplay(ctx context.Context, text string, source, target domain.Language) string {
	out, err := s.Translate(ctx, text, source, target)
	if err != nil {
		logger.Warn("Translation %s->%s failed: %v", source, target, err)
		return domain.TranslationFailureText(err)
	}
	return out
}

// Languages returns the language tags offered for translation.
func (s *TranslationService) Languages() []domain.Language {
	return append([]domain.Language(nil), s.languages...)
}

// Provider returns the active backend name.
func (s *TranslationService) Provider() string {
	if s.translator == nil {
		return "none"
	}
	return s.translator.Name()
}

func (s *TranslationService) checkLanguage(l domain.Language) error {
	for _, known := range s.languages {
		if l == known {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", l, domain.ErrUnsupportedLanguage)
}
