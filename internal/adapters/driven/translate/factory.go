package translate

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/wortlens/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/wortlens/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/wortlens/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/wortlens/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for backend connectivity validation.
const pingTimeout = 5 * time.Second

// Config selects and configures a translation backend.
type Config struct {
	// Provider names the backend (default: google).
	Provider domain.TranslationProvider

	// APIKey is required by openai, gemini and anthropic.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// Model is the LLM model. Ignored by google.
	Model string

	// Timeout bounds a single backend request.
	Timeout time.Duration

	// ChunkSize caps characters per google request.
	ChunkSize int
}

// pinger is implemented by backends that can check connectivity.
type pinger interface {
	Ping(ctx context.Context) error
}

// CreateTranslator creates the backend named by cfg.Provider.
// prompts is required for the LLM providers.
func CreateTranslator(ctx context.Context, cfg Config, prompts driven.PromptStore) (driven.Translator, error) {
	if cfg.Provider == "" {
		cfg.Provider = domain.ProviderGoogle
	}
	if cfg.Provider.RequiresAPIKey() && cfg.APIKey == "" {
		return nil, fmt.Errorf("%s requires an API key: %w", cfg.Provider, domain.ErrInvalidInput)
	}

	switch cfg.Provider {
	case domain.ProviderGoogle:
		return NewGoogleTranslator(GoogleConfig{
			BaseURL:   cfg.BaseURL,
			ChunkSize: cfg.ChunkSize,
			Timeout:   cfg.Timeout,
		}), nil

	case domain.ProviderOpenAI:
		llm, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return newLLMBackend(cfg.Provider, llm, prompts)

	case domain.ProviderGemini:
		llm, err := geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		return newLLMBackend(cfg.Provider, llm, prompts)

	case domain.ProviderOllama:
		llm := ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		return newLLMBackend(cfg.Provider, llm, prompts)

	case domain.ProviderAnthropic:
		llm, err := anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return newLLMBackend(cfg.Provider, llm, prompts)

	default:
		return nil, fmt.Errorf("translation provider %q: %w", cfg.Provider, domain.ErrUnsupportedType)
	}
}

// ValidateTranslator pings backends that support it.
// This is intended for `settings set provider` to validate credentials on configuration.
func ValidateTranslator(ctx context.Context, t driven.Translator) error {
	p, ok := t.(pinger)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%s unreachable: %w", t.Name(), err)
	}
	return nil
}

func newLLMBackend(provider domain.TranslationProvider, llm driven.LLMService, prompts driven.PromptStore) (driven.Translator, error) {
	t, err := NewLLMTranslator(provider.String(), llm, prompts)
	if err != nil {
		llm.Close()
		return nil, err
	}
	return t, nil
}
