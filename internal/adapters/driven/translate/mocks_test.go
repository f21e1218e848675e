package translate

import (
	"context"
	"errors"

	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

type mockLLM struct {
	reply    string
	err      error
	pingErr  error
	messages []driven.ChatMessage
	closed   bool
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.messages = messages
	return m.reply, m.err
}

func (m *mockLLM) ModelName() string { return "mock-model" }

func (m *mockLLM) Ping(context.Context) error { return m.pingErr }

func (m *mockLLM) Close() error {
	m.closed = true
	return nil
}

type mockPrompts map[string]string

func (m mockPrompts) Load(name string) (string, error) {
	p, ok := m[name]
	if !ok {
		return "", errors.New("prompt not found: " + name)
	}
	return p, nil
}

func (m mockPrompts) Reload() {}

func defaultMockPrompts() mockPrompts {
	return mockPrompts{
		driven.PromptTranslateSystem: "You translate.",
		driven.PromptTranslate:       "From %s to %s:\n%s",
	}
}
