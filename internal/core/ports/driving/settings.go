package driving

import "github.com/custodia-labs/wortlens/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetCategories updates the default expansion categories.
	SetCategories(categories []domain.Category) error

	// SetLanguages updates the default translation languages.
	SetLanguages(source, target domain.Language) error

	// SetProvider updates the translation backend.
	SetProvider(provider domain.TranslationProvider) error

	// SetBackendOptions updates the model, endpoint and API key of the backend.
	// Empty values clear the stored setting.
	SetBackendOptions(model, baseURL, apiKey string) error

	// SetTop updates the default number of frequency rows.
	SetTop(n int) error

	// Reset removes all stored settings so the defaults apply again.
	Reset() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
