package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// Ensure LLMTranslator implements the interface.
var _ driven.Translator = (*LLMTranslator)(nil)

const llmTemperature = 0.2

// LLMTranslator translates with a chat model and the prompt store's templates.
type LLMTranslator struct {
	name    string
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewLLMTranslator wraps an LLM service. name identifies the provider.
func NewLLMTranslator(name string, llm driven.LLMService, prompts driven.PromptStore) (*LLMTranslator, error) {
	if llm == nil {
		return nil, fmt.Errorf("%s: LLM service is required: %w", name, domain.ErrInvalidInput)
	}
	if prompts == nil {
		return nil, fmt.Errorf("%s: prompt store is required: %w", name, domain.ErrInvalidInput)
	}
	return &LLMTranslator{name: name, llm: llm, prompts: prompts}, nil
}

// Name returns the backend identifier.
func (t *LLMTranslator) Name() string {
	return t.name
}

// Model returns the underlying model name.
func (t *LLMTranslator) Model() string {
	return t.llm.ModelName()
}

// Translate asks the model for a translation of req.Text.
func (t *LLMTranslator) Translate(ctx context.Context, req domain.TranslationRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req.Text, nil
	}

	messages, err := t.messages(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrTranslation, t.name, err)
	}

	out, err := t.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: llmTemperature})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrTranslation, t.name, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: %s: empty response", domain.ErrTranslation, t.name)
	}
	return out, nil
}

// Ping checks that the model is reachable.
func (t *LLMTranslator) Ping(ctx context.Context) error {
	return t.llm.Ping(ctx)
}

// Close releases the LLM service.
func (t *LLMTranslator) Close() error {
	return t.llm.Close()
}

func (t *LLMTranslator) messages(req domain.TranslationRequest) ([]driven.ChatMessage, error) {
	system, err := t.prompts.Load(driven.PromptTranslateSystem)
	if err != nil {
		return nil, err
	}
	tmpl, err := t.prompts.Load(driven.PromptTranslate)
	if err != nil {
		return nil, err
	}
	if n := strings.Count(tmpl, "%s"); n != 3 {
		return nil, errors.New("prompt " + driven.PromptTranslate + " must contain three %s placeholders")
	}

	return []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf(tmpl, req.Source.Name(), req.Target.Name(), req.Text)},
	}, nil
}
