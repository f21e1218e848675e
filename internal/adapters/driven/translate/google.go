package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/logger"
	"github.com/custodia-labs/wortlens/internal/segment"
)

// Ensure GoogleTranslator implements the interface.
var _ driven.Translator = (*GoogleTranslator)(nil)

// Google web endpoint defaults.
const (
	DefaultGoogleURL  = "https://translate.googleapis.com/translate_a/single"
	DefaultChunkSize  = 4500
	DefaultTimeout    = 60 * time.Second
	maxGoogleResponse = 4 << 20
)

// GoogleConfig configures the Google web backend.
type GoogleConfig struct {
	// BaseURL is the translate_a/single endpoint.
	BaseURL string

	// ChunkSize caps the characters sent per request.
	ChunkSize int

	// Timeout bounds a single request.
	Timeout time.Duration
}

// GoogleTranslator uses the keyless web endpoint.
type GoogleTranslator struct {
	client    *http.Client
	baseURL   string
	chunkSize int
}

// NewGoogleTranslator creates the Google web backend.
func NewGoogleTranslator(cfg GoogleConfig) *GoogleTranslator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGoogleURL
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &GoogleTranslator{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		chunkSize: cfg.ChunkSize,
	}
}

// Name returns the backend identifier.
func (g *GoogleTranslator) Name() string {
	return string(domain.ProviderGoogle)
}

// Translate sends the text in sentence-aligned chunks and joins the results.
// Whitespace around each chunk is kept so paragraph breaks survive.
func (g *GoogleTranslator) Translate(ctx context.Context, req domain.TranslationRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req.Text, nil
	}

	chunks := segment.Chunk(req.Text, g.chunkSize)
	logger.Debug("google: translating %d chunk(s) %s->%s", len(chunks), req.Source, req.Target)

	var out strings.Builder
	for _, chunk := range chunks {
		lead, core, trail := splitSpace(chunk)
		if core == "" {
			out.WriteString(chunk)
			continue
		}
		translated, err := g.translateChunk(ctx, core, req.Source, req.Target)
		if err != nil {
			return "", fmt.Errorf("%w: google: %w", domain.ErrTranslation, err)
		}
		out.WriteString(lead)
		out.WriteString(translated)
		out.WriteString(trail)
	}
	return out.String(), nil
}

// Close releases resources.
func (g *GoogleTranslator) Close() error {
	return nil
}

func (g *GoogleTranslator) translateChunk(ctx context.Context, text string, source, target domain.Language) (string, error) {
	sl := source.String()
	if sl == "" {
		sl = "auto"
	}
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", sl)
	params.Set("tl", target.String())
	params.Set("dt", "t")
	params.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGoogleResponse))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse reads [[["translated","original",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(top) == 0 {
		return "", errors.New("empty response")
	}

	var segments [][]any
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no translated segments")
	}
	return b.String(), nil
}

// splitSpace returns the leading whitespace, the trimmed core and the trailing whitespace.
func splitSpace(s string) (lead, core, trail string) {
	core = strings.TrimLeftFunc(s, unicode.IsSpace)
	lead = s[:len(s)-len(core)]
	trimmed := strings.TrimRightFunc(core, unicode.IsSpace)
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}
