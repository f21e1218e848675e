// Package gemini provides an LLM service adapter using the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// Model is the LLM model to use (default: gemini-1.5-flash).
	Model string
}

// backend sends a prepared conversation to Gemini.
type backend interface {
	send(ctx context.Context, req request) (*genai.GenerateContentResponse, error)
	ping(ctx context.Context) error
	close() error
}

// request is a conversation in Gemini's shape.
type request struct {
	model   string
	system  string
	history []*genai.Content
	parts   []genai.Part
	config  genai.GenerationConfig
}

// LLMService provides chat completions using Gemini.
type LLMService struct {
	backend backend
	model   string
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &LLMService{backend: &clientBackend{client: client}, model: cfg.Model}, nil
}

// Chat conducts a multi-turn conversation. The last message is sent; earlier
// ones become history.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req, err := buildRequest(s.model, messages, opts)
	if err != nil {
		return "", err
	}

	resp, err := s.backend.send(ctx, req)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return responseText(resp)
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the API key by listing models.
func (s *LLMService) Ping(ctx context.Context) error {
	if err := s.backend.ping(ctx); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *LLMService) Close() error {
	return s.backend.close()
}

func buildRequest(model string, messages []driven.ChatMessage, opts driven.ChatOptions) (request, error) {
	req := request{model: model}
	if opts.Temperature > 0 {
		t := float32(opts.Temperature)
		req.config.Temperature = &t
	}
	if opts.MaxTokens > 0 {
		n := int32(opts.MaxTokens)
		req.config.MaxOutputTokens = &n
	}

	var system []string
	var turns []driven.ChatMessage
	for _, msg := range messages {
		if msg.Role == "system" {
			system = append(system, msg.Content)
			continue
		}
		turns = append(turns, msg)
	}
	if len(turns) == 0 {
		return request{}, errors.New("gemini: no user message")
	}
	req.system = strings.Join(system, "\n\n")

	for _, msg := range turns[:len(turns)-1] {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		req.history = append(req.history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(msg.Content)}})
	}
	req.parts = []genai.Part{genai.Text(turns[len(turns)-1].Content)}
	return req, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: no candidates returned")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// clientBackend talks to the Gemini API through the genai client.
type clientBackend struct {
	client *genai.Client
}

func (b *clientBackend) send(ctx context.Context, req request) (*genai.GenerateContentResponse, error) {
	model := b.client.GenerativeModel(req.model)
	model.GenerationConfig = req.config
	if req.system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.system)}}
	}

	if len(req.history) == 0 {
		return model.GenerateContent(ctx, req.parts...)
	}
	session := model.StartChat()
	session.History = req.history
	return session.SendMessage(ctx, req.parts...)
}

func (b *clientBackend) ping(ctx context.Context) error {
	_, err := b.client.ListModels(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (b *clientBackend) close() error {
	return b.client.Close()
}
