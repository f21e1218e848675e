package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

func TestNewLLMTranslator_RequiresCollaborators(t *testing.T) {
	_, err := NewLLMTranslator("openai", nil, defaultMockPrompts())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewLLMTranslator("openai", &mockLLM{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLLMTranslator_Translate(t *testing.T) {
	llm := &mockLLM{reply: "  Anjing itu berlari.\n"}
	tr, err := NewLLMTranslator("openai", llm, defaultMockPrompts())
	require.NoError(t, err)

	out, err := tr.Translate(context.Background(), domain.TranslationRequest{
		Text:   "Der Hund läuft.",
		Source: "de",
		Target: "id",
	})

	require.NoError(t, err)
	assert.Equal(t, "Anjing itu berlari.", out)
	require.Len(t, llm.messages, 2)
	assert.Equal(t, driven.ChatMessage{Role: "system", Content: "You translate."}, llm.messages[0])
	assert.Equal(t, "From German to Indonesian:\nDer Hund läuft.", llm.messages[1].Content)
	assert.Equal(t, "openai", tr.Name())
	assert.Equal(t, "mock-model", tr.Model())
}

func TestLLMTranslator_Failures(t *testing.T) {
	tests := []struct {
		name    string
		llm     *mockLLM
		prompts mockPrompts
	}{
		{"llm error", &mockLLM{err: errors.New("connection refused")}, defaultMockPrompts()},
		{"empty reply", &mockLLM{reply: "   "}, defaultMockPrompts()},
		{"missing prompt", &mockLLM{reply: "x"}, mockPrompts{}},
		{"bad template", &mockLLM{reply: "x"}, mockPrompts{
			driven.PromptTranslateSystem: "sys",
			driven.PromptTranslate:       "Translate: %s",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewLLMTranslator("ollama", tt.llm, tt.prompts)
			require.NoError(t, err)

			_, err = tr.Translate(context.Background(), domain.TranslationRequest{Text: "Hallo", Source: "de", Target: "en"})

			assert.ErrorIs(t, err, domain.ErrTranslation)
		})
	}
}

func TestLLMTranslator_EmptyTextSkipsModel(t *testing.T) {
	llm := &mockLLM{err: errors.New("should not be called")}
	tr, err := NewLLMTranslator("ollama", llm, defaultMockPrompts())
	require.NoError(t, err)

	out, err := tr.Translate(context.Background(), domain.TranslationRequest{Text: "", Target: "en"})

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Nil(t, llm.messages)
}

func TestLLMTranslator_PingAndClose(t *testing.T) {
	llm := &mockLLM{}
	tr, err := NewLLMTranslator("ollama", llm, defaultMockPrompts())
	require.NoError(t, err)

	assert.NoError(t, ValidateTranslator(context.Background(), tr))
	llm.pingErr = errors.New("down")
	assert.Error(t, ValidateTranslator(context.Background(), tr))

	require.NoError(t, tr.Close())
	assert.True(t, llm.closed)
}
