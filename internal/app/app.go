// Package app builds the application object shared by every driving adapter.
// It replaces process-wide model and translator globals: everything is
// created once from the loaded configuration and passed along explicitly.
package app

import (
	"context"
	"fmt"

	"github.com/custodia-labs/wortlens/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wortlens/internal/adapters/driven/nlp"
	"github.com/custodia-labs/wortlens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wortlens/internal/adapters/driven/translate"
	"github.com/custodia-labs/wortlens/internal/config"
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/core/services"
	"github.com/custodia-labs/wortlens/internal/extractors"
	"github.com/custodia-labs/wortlens/internal/extractors/docx"
	"github.com/custodia-labs/wortlens/internal/extractors/pdf"
	"github.com/custodia-labs/wortlens/internal/extractors/plaintext"
	"github.com/custodia-labs/wortlens/internal/logger"
)

// App holds the configured adapters and services.
type App struct {
	Config *config.Config

	// Driven adapters.
	Settings   driven.ConfigStore
	Prompts    driven.PromptStore
	Extractors *extractors.Registry
	Models     driven.ModelLoader
	Tagger     driven.Tagger
	ModelInfo  driven.ModelInfo
	ModelErr   error
	Translator driven.Translator
	Sessions   *memory.SessionStore

	// Services.
	Documents       *services.DocumentService
	Analysis        *services.AnalysisService
	Translation     *services.TranslationService
	Export          *services.ExportService
	SettingsService *services.SettingsService
}

// Options adjust how New builds the application.
type Options struct {
	// SkipModel leaves the tagger unloaded. Commands that never tag set it.
	SkipModel bool

	// Translator replaces the configured backend. Used by tests.
	Translator driven.Translator

	// Tagger replaces the configured model. Used by tests.
	Tagger driven.Tagger
}

// New builds the application from cfg.
//
// A missing NLP model or translation backend is not fatal: the affected
// operations report domain.ErrModelUnavailable or domain.ErrTranslation.
// Invalid extractor configuration is fatal.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required: %w", domain.ErrInvalidInput)
	}
	a := &App{Config: cfg}

	logger.Section("Initialising")

	a.initSettings()
	if err := a.initExtractors(); err != nil {
		return nil, err
	}
	a.initPrompts()
	a.initModel(ctx, opts)
	a.initTranslator(ctx, opts)
	if err := a.initServices(); err != nil {
		a.Close()
		return nil, err
	}

	logger.Debug("Application initialised (model=%t, translator=%s)", a.Tagger != nil, a.Translation.Provider())
	return a, nil
}

// Close releases the translation backend.
func (a *App) Close() error {
	if a.Translator == nil {
		return nil
	}
	return a.Translator.Close()
}

// ModelLoaded reports whether POS analysis is available.
func (a *App) ModelLoaded() bool {
	return a.Tagger != nil
}

func (a *App) initSettings() {
	store, err := file.NewConfigStore(a.Config.Dir)
	if err != nil {
		logger.Warn("Settings file unavailable, using memory: %v", err)
		a.Settings = memory.NewConfigStore()
		return
	}
	a.Settings = store
}

func (a *App) initExtractors() error {
	pdfExtractor, err := pdf.NewForBackend(a.Config.Extract.PDFBackend)
	if err != nil {
		return fmt.Errorf("init pdf extractor: %w", err)
	}
	a.Extractors = extractors.NewRegistry(plaintext.New(), docx.New(), pdfExtractor)
	return nil
}

func (a *App) initPrompts() {
	prompts, err := file.NewPromptStore(a.Config.PromptDir())
	if err != nil {
		logger.Warn("Prompt directory unavailable: %v", err)
		return
	}
	a.Prompts = prompts
}

func (a *App) initModel(ctx context.Context, opts Options) {
	a.Models = nlp.NewLoader(nlp.Config{
		Name:           a.Config.NLP.Model,
		Dir:            a.Config.NLP.ModelDir,
		URL:            a.Config.NLP.ModelURL,
		DisableBundled: a.Config.NLP.DisableBundled,
		Timeout:        a.Config.NLP.Timeout,
	})

	if opts.Tagger != nil {
		a.Tagger = opts.Tagger
		a.ModelInfo = driven.ModelInfo{Name: opts.Tagger.ModelName()}
		return
	}
	if opts.SkipModel {
		return
	}

	tagger, info, err := a.Models.Load(ctx)
	a.ModelInfo = info
	if err != nil {
		logger.Warn("POS analysis disabled: %v", err)
		a.ModelErr = err
		return
	}
	a.Tagger = tagger
}

func (a *App) initTranslator(ctx context.Context, opts Options) {
	if opts.Translator != nil {
		a.Translator = opts.Translator
		return
	}
	t, err := translate.CreateTranslator(ctx, translate.Config{
		Provider:  domain.TranslationProvider(a.Config.Translate.Provider),
		APIKey:    a.Config.Translate.APIKey,
		BaseURL:   a.Config.Translate.BaseURL,
		Model:     a.Config.Translate.Model,
		Timeout:   a.Config.Translate.Timeout,
		ChunkSize: a.Config.Translate.ChunkSize,
	}, a.Prompts)
	if err != nil {
		logger.Warn("Translation disabled: %v", err)
		return
	}
	a.Translator = t
}

func (a *App) initServices() error {
	languages, err := a.Config.Languages()
	if err != nil {
		return err
	}
	categories, err := a.Config.Categories()
	if err != nil {
		return err
	}

	a.Sessions = memory.NewSessionStore(a.Config.Server.SessionTTL)
	a.Documents = services.NewDocumentService(a.Extractors, a.Sessions, a.Config.Extract.MaxBytes)
	a.Analysis = services.NewAnalysisService(a.Tagger, categories)
	a.Translation = services.NewTranslationService(a.Translator, services.TranslationConfig{
		Languages:     languages,
		Timeout:       a.Config.Translate.Timeout,
		RatePerSecond: a.Config.Translate.RatePerSecond,
		Burst:         a.Config.Translate.Burst,
	})
	a.Export = services.NewExportService()
	a.SettingsService = services.NewSettingsService(a.Settings)
	return nil
}

// DefaultLanguages returns the configured source and target languages.
func (a *App) DefaultLanguages() (source, target domain.Language) {
	return domain.Language(a.Config.Translate.Source), domain.Language(a.Config.Translate.Target)
}

// RequireModel returns the load error when no tagger is available.
func (a *App) RequireModel() error {
	if a.Tagger != nil {
		return nil
	}
	if a.ModelErr != nil {
		return a.ModelErr
	}
	return domain.ErrModelUnavailable
}
