package services

import (
	"fmt"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage. They match the configuration keys so a
// saved setting overrides the built-in default on the next start.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyCategories = "analysis.categories"
	keyTop        = "analysis.top"
	keySource     = "translate.source"
	keyTarget     = "translate.target"
	keyProvider   = "translate.provider"
	keyModel      = "translate.model"
	keyBaseURL    = "translate.base_url"
	keyAPIKey     = "translate.api_key"
)

var settingsKeys = []string{
	keyCategories, keyTop, keySource, keyTarget,
	keyProvider, keyModel, keyBaseURL, keyAPIKey,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Stored values that no longer parse fall back to the defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Categories:     s.getCategories(defaults.Categories),
		SourceLanguage: s.getLanguage(keySource, defaults.SourceLanguage),
		TargetLanguage: s.getLanguage(keyTarget, defaults.TargetLanguage),
		Provider:       s.getProvider(defaults.Provider),
		Top:            s.getInt(keyTop, defaults.Top),
		Model:          s.configStore.GetString(keyModel),
		BaseURL:        s.configStore.GetString(keyBaseURL),
		APIKey:         s.configStore.GetString(keyAPIKey),
	}
	return settings, nil
}

// Save persists application settings. All values are written together.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	categories := make([]string, len(settings.Categories))
	for i, c := range settings.Categories {
		categories[i] = c.String()
	}

	values := map[string]any{
		keyCategories: categories,
		keyTop:        settings.Top,
		keySource:     settings.SourceLanguage.String(),
		keyTarget:     settings.TargetLanguage.String(),
		keyProvider:   settings.Provider.String(),
	}
	if err := s.configStore.SetMany(values); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return s.SetBackendOptions(settings.Model, settings.BaseURL, settings.APIKey)
}

// SetCategories updates the default expansion categories.
func (s *SettingsService) SetCategories(categories []domain.Category) error {
	if len(categories) == 0 {
		return fmt.Errorf("at least one category is required: %w", domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Categories = categories
	return s.Save(settings)
}

// SetLanguages updates the default translation languages.
func (s *SettingsService) SetLanguages(source, target domain.Language) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.SourceLanguage = source
	settings.TargetLanguage = target
	return s.Save(settings)
}

// SetProvider updates the translation backend.
func (s *SettingsService) SetProvider(provider domain.TranslationProvider) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid translation provider %q: %w", provider, domain.ErrUnsupportedType)
	}
	if err := s.configStore.Set(keyProvider, provider.String()); err != nil {
		return fmt.Errorf("save translation provider: %w", err)
	}
	return nil
}

// SetBackendOptions updates the model, endpoint and API key of the backend.
// Empty values clear the stored setting.
func (s *SettingsService) SetBackendOptions(model, baseURL, apiKey string) error {
	set := map[string]any{}
	var clear []string
	for key, value := range map[string]string{keyModel: model, keyBaseURL: baseURL, keyAPIKey: apiKey} {
		if value == "" {
			clear = append(clear, key)
		} else {
			set[key] = value
		}
	}
	if len(set) > 0 {
		if err := s.configStore.SetMany(set); err != nil {
			return fmt.Errorf("save backend options: %w", err)
		}
	}
	if len(clear) > 0 {
		if err := s.configStore.Delete(clear...); err != nil {
			return fmt.Errorf("clear backend options: %w", err)
		}
	}
	return nil
}

// SetTop updates the default number of frequency rows.
func (s *SettingsService) SetTop(n int) error {
	if n <= 0 {
		return fmt.Errorf("top must be positive, got %d: %w", n, domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyTop, n); err != nil {
		return fmt.Errorf("save top: %w", err)
	}
	return nil
}

// Reset removes all stored settings so the defaults apply again.
func (s *SettingsService) Reset() error {
	if err := s.configStore.Delete(settingsKeys...); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func validateSettings(settings *domain.Settings) error {
	if len(settings.Categories) == 0 {
		return fmt.Errorf("at least one category is required: %w", domain.ErrInvalidInput)
	}
	if settings.Top <= 0 {
		return fmt.Errorf("top must be positive, got %d: %w", settings.Top, domain.ErrInvalidInput)
	}
	if settings.SourceLanguage == "" || settings.TargetLanguage == "" {
		return fmt.Errorf("source and target language are required: %w", domain.ErrUnsupportedLanguage)
	}
	if !settings.Provider.IsValid() {
		return fmt.Errorf("invalid translation provider %q: %w", settings.Provider, domain.ErrUnsupportedType)
	}
	return nil
}

func (s *SettingsService) getCategories(def []domain.Category) []domain.Category {
	stored := s.configStore.GetStringSlice(keyCategories)
	if len(stored) == 0 {
		return def
	}
	categories, err := domain.ParseCategories(stored)
	if err != nil || len(categories) == 0 {
		return def
	}
	return categories
}

func (s *SettingsService) getLanguage(key string, def domain.Language) domain.Language {
	lang, err := domain.ParseLanguage(s.configStore.GetString(key))
	if err != nil {
		return def
	}
	return lang
}

func (s *SettingsService) getProvider(def domain.TranslationProvider) domain.TranslationProvider {
	p := domain.TranslationProvider(s.configStore.GetString(keyProvider))
	if !p.IsValid() {
		return def
	}
	return p
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	if n := s.configStore.GetInt(key); n > 0 {
		return n
	}
	return def
}
