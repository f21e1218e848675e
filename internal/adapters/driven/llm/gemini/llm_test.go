package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
)

type fakeBackend struct {
	last    request
	resp    *genai.GenerateContentResponse
	err     error
	pingErr error
	closed  bool
}

func (f *fakeBackend) send(_ context.Context, req request) (*genai.GenerateContentResponse, error) {
	f.last = req
	return f.resp, f.err
}

func (f *fakeBackend) ping(context.Context) error { return f.pingErr }

func (f *fakeBackend) close() error {
	f.closed = true
	return nil
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(context.Background(), Config{})
	assert.Error(t, err)
}

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest("gemini-1.5-flash", []driven.ChatMessage{
		{Role: "system", Content: "You translate."},
		{Role: "user", Content: "Hallo"},
		{Role: "assistant", Content: "Halo"},
		{Role: "user", Content: "Der Hund läuft."},
	}, driven.ChatOptions{MaxTokens: 100, Temperature: 0.3})

	require.NoError(t, err)
	assert.Equal(t, "You translate.", req.system)
	require.Len(t, req.history, 2)
	assert.Equal(t, "user", req.history[0].Role)
	assert.Equal(t, "model", req.history[1].Role)
	assert.Equal(t, []genai.Part{genai.Text("Der Hund läuft.")}, req.parts)
	require.NotNil(t, req.config.MaxOutputTokens)
	assert.Equal(t, int32(100), *req.config.MaxOutputTokens)
	require.NotNil(t, req.config.Temperature)
	assert.InDelta(t, 0.3, *req.config.Temperature, 0.0001)
}

func TestBuildRequest_NoUserMessage(t *testing.T) {
	_, err := buildRequest("m", []driven.ChatMessage{{Role: "system", Content: "x"}}, driven.ChatOptions{})
	assert.Error(t, err)
}

func TestResponseText(t *testing.T) {
	t.Run("joins text parts", func(t *testing.T) {
		out, err := responseText(textResponse(genai.Text("Anjing "), genai.Text("berlari.")))
		require.NoError(t, err)
		assert.Equal(t, "Anjing berlari.", out)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := responseText(&genai.GenerateContentResponse{})
		assert.Error(t, err)
	})

	t.Run("nil response", func(t *testing.T) {
		_, err := responseText(nil)
		assert.Error(t, err)
	})
}

func TestChat(t *testing.T) {
	fake := &fakeBackend{resp: textResponse(genai.Text("Halo"))}
	svc := &LLMService{backend: fake, model: "gemini-test"}

	out, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "Hallo"}}, driven.ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Halo", out)
	assert.Equal(t, "gemini-test", fake.last.model)
	assert.Empty(t, fake.last.history)
}

func TestChat_BackendError(t *testing.T) {
	cause := errors.New("quota exceeded")
	svc := &LLMService{backend: &fakeBackend{err: cause}, model: "m"}

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "Hallo"}}, driven.ChatOptions{})
	assert.ErrorIs(t, err, cause)
}

func TestPingAndClose(t *testing.T) {
	fake := &fakeBackend{}
	svc := &LLMService{backend: fake, model: "m"}

	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
	assert.True(t, fake.closed)

	fake.pingErr = errors.New("denied")
	assert.Error(t, svc.Ping(context.Background()))
}
