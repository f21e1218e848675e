package domain

// TranslationProvider identifies a translation backend.
type TranslationProvider string

// Available translation providers.
const (
	// ProviderGoogle uses the public Google Translate web endpoint.
	ProviderGoogle TranslationProvider = "google"

	// ProviderOpenAI uses OpenAI chat completions.
	ProviderOpenAI TranslationProvider = "openai"

	// ProviderGemini uses Google Gemini.
	ProviderGemini TranslationProvider = "gemini"

	// ProviderOllama uses a local Ollama server.
	ProviderOllama TranslationProvider = "ollama"

	// ProviderAnthropic uses the Anthropic messages API.
	ProviderAnthropic TranslationProvider = "anthropic"
)

// IsValid returns true if the provider is recognised.
func (p TranslationProvider) IsValid() bool {
	switch p {
	case ProviderGoogle, ProviderOpenAI, ProviderGemini, ProviderOllama, ProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if the provider needs an API key.
func (p TranslationProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI || p == ProviderGemini || p == ProviderAnthropic
}

// String returns the string representation.
func (p TranslationProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p TranslationProvider) Description() string {
	switch p {
	case ProviderGoogle:
		return "Google Translate (public web endpoint)"
	case ProviderOpenAI:
		return "OpenAI chat completions"
	case ProviderGemini:
		return "Google Gemini"
	case ProviderOllama:
		return "Ollama (local models)"
	case ProviderAnthropic:
		return "Anthropic messages API"
	default:
		return "Unknown"
	}
}

// AllTranslationProviders returns every recognised provider.
func AllTranslationProviders() []TranslationProvider {
	return []TranslationProvider{ProviderGoogle, ProviderOpenAI, ProviderGemini, ProviderOllama, ProviderAnthropic}
}

// Settings holds the user-facing defaults.
type Settings struct {
	// Categories are expanded when the caller does not choose.
	Categories []Category

	// SourceLanguage is the default translation source.
	SourceLanguage Language

	// TargetLanguage is the default translation target.
	TargetLanguage Language

	// Provider is the translation backend.
	Provider TranslationProvider

	// Top is the number of frequency rows shown by default.
	Top int

	// Model is the LLM model for LLM providers. Empty uses the provider default.
	Model string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// APIKey authenticates against openai, gemini and anthropic.
	APIKey string
}

// MaskedAPIKey returns the API key with all but the last four characters hidden.
func (s Settings) MaskedAPIKey() string {
	if s.APIKey == "" {
		return ""
	}
	if len(s.APIKey) <= 4 {
		return "****"
	}
	return "****" + s.APIKey[len(s.APIKey)-4:]
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Categories:     DefaultCategories(),
		SourceLanguage: DefaultSourceLanguage,
		TargetLanguage: DefaultTargetLanguage,
		Provider:       ProviderGoogle,
		Top:            10,
	}
}
