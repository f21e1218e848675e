package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wortlens/internal/app"
	"github.com/custodia-labs/wortlens/internal/config"
	"github.com/custodia-labs/wortlens/internal/core/domain"
)

const sampleText = "Der Hund läuft. Der Hund bellt."

type stubTranslator struct{ err error }

func (s *stubTranslator) Translate(_ context.Context, req domain.TranslationRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return strings.ToUpper(req.Text), nil
}

func (s *stubTranslator) Name() string { return "stub" }

func (s *stubTranslator) Close() error { return nil }

func newTestServer(t *testing.T, opts app.Options) *Server {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.NLP.ModelURL = ""
	if opts.Translator == nil {
		opts.Translator = &stubTranslator{}
	}

	a, err := app.New(context.Background(), cfg, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv, err := NewServer(&Ports{
		Documents:   a.Documents,
		Analysis:    a.Analysis,
		Translation: a.Translation,
		Export:      a.Export,
	}, Config{Top: 10, Source: "de", Target: "id", MaxUploadBytes: 1 << 16})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func upload(t *testing.T, srv *Server, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return do(t, srv, http.MethodPost, "/api/v1/documents", buf.Bytes(), w.FormDataContentType())
}

func uploadSample(t *testing.T, srv *Server) string {
	t.Helper()
	rec := upload(t, srv, "hund.txt", sampleText)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestNewServer_RequiresPorts(t *testing.T) {
	_, err := NewServer(&Ports{}, Config{})
	assert.ErrorIs(t, err, ErrMissingService)

	_, err = NewServer(nil, Config{})
	assert.ErrorIs(t, err, ErrMissingService)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, app.Options{})

	rec := do(t, srv, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"model":true`)
}

func TestLanguages(t *testing.T) {
	srv := newTestServer(t, app.Options{})

	rec := do(t, srv, http.MethodGet, "/api/v1/languages", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Languages []languageResponse `json:"languages"`
		Source    string             `json:"source"`
		Target    string             `json:"target"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "de", resp.Source)
	assert.Equal(t, "id", resp.Target)
	assert.Contains(t, resp.Languages, languageResponse{Code: "de", Name: "German"})
}

func TestUploadDocument(t *testing.T) {
	srv := newTestServer(t, app.Options{})

	rec := upload(t, srv, "hund.txt", sampleText)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hund.txt", resp.Name)
	assert.Equal(t, "plaintext", resp.Format)
	assert.Equal(t, sampleText, resp.Text)
	assert.Equal(t, "der hund läuft der hund bellt", resp.Normalized)
}

func TestUploadDocument_Errors(t *testing.T) {
	srv := newTestServer(t, app.Options{})

	t.Run("unsupported format", func(t *testing.T) {
		rec := upload(t, srv, "notes.csv", "a,b")
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, "unsupported_format", apiErr.Code)
		assert.Contains(t, apiErr.Message, ".txt, .pdf, .docx")
	})

	t.Run("corrupt docx", func(t *testing.T) {
		rec := upload(t, srv, "broken.docx", "not a zip")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("missing file field", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/api/v1/documents", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		rec := upload(t, srv, "big.txt", strings.Repeat("a", 1<<16+1))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("body beyond the read limit", func(t *testing.T) {
		rec := upload(t, srv, "huge.txt", strings.Repeat("a", 1<<16+2<<20))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "too_large", decodeError(t, rec).Code)
	})
}

func TestDocumentLifecycle(t *testing.T) {
	srv := newTestServer(t, app.Options{})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/v1/documents/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/documents", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id)

	rec = do(t, srv, http.MethodDelete, "/api/v1/documents/"+id, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/documents/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestFrequency(t *testing.T) {
	srv := newTestServer(t, app.Options{})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/frequency?top=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total    int                     `json:"total"`
		Distinct int                     `json:"distinct"`
		Entries  []domain.FrequencyEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, 4, resp.Distinct)
	assert.Equal(t, []domain.FrequencyEntry{{Word: "der", Count: 2}, {Word: "hund", Count: 2}}, resp.Entries)

	rec = do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/frequency?top=-1", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPOSAndExpand(t *testing.T) {
	srv := newTestServer(t, app.Options{})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/pos", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"category":"NOUN","count":2}`)

	rec = do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/expand?categories=noun,Verb", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Categories domain.CategoryMap `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"hund", "hund"}, resp.Categories[domain.CategoryNoun])
	assert.Equal(t, []string{"läuft", "bellt"}, resp.Categories[domain.CategoryVerb])
}

func TestPOS_ModelUnavailable(t *testing.T) {
	srv := newTestServer(t, app.Options{SkipModel: true})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/pos", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "model_unavailable", decodeError(t, rec).Code)

	// Frequency does not need the model.
	rec = do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/frequency", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReport(t *testing.T) {
	srv := newTestServer(t, app.Options{})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/report", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Stats.Sentences)
	assert.Equal(t, 6, report.Stats.Tokens)
	assert.NotEmpty(t, report.POS)
	assert.Contains(t, report.Categories, domain.CategoryNoun)
}

func TestTranslate(t *testing.T) {
	srv := newTestServer(t, app.Options{})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodPost, "/api/v1/documents/"+id+"/translate",
		[]byte(`{"source":"de","target":"en"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp translateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, strings.ToUpper(sampleText), resp.Text)
	assert.Equal(t, "en", resp.Target)
	assert.Empty(t, resp.Error)

	rec = do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/export/translation.txt", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, strings.ToUpper(sampleText), rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "translated_text.txt")
}

func TestTranslate_DefaultsWithoutBody(t *testing.T) {
	srv := newTestServer(t, app.Options{})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodPost, "/api/v1/documents/"+id+"/translate", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"target":"id"`)
}

func TestTranslate_FailureIsRecovered(t *testing.T) {
	srv := newTestServer(t, app.Options{Translator: &stubTranslator{err: errors.New("quota exceeded")}})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodPost, "/api/v1/documents/"+id+"/translate", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp translateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Text, "Error: "), resp.Text)
	assert.Contains(t, resp.Error, "quota exceeded")

	// Nothing was stored, so there is nothing to export.
	rec = do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/export/translation.txt", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTranslate_UnsupportedLanguage(t *testing.T) {
	srv := newTestServer(t, app.Options{})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodPost, "/api/v1/documents/"+id+"/translate",
		[]byte(`{"target":"xx"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportFrequency(t *testing.T) {
	srv := newTestServer(t, app.Options{})
	id := uploadSample(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/v1/documents/"+id+"/export/frequency.csv", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "word_frequency.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Word,Frequency", lines[0])
	assert.Equal(t, "der,2", lines[1])
	assert.Equal(t, "hund,2", lines[2])
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, app.Options{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrUnsupportedFormat, http.StatusUnsupportedMediaType},
		{domain.ErrDecoding, http.StatusUnprocessableEntity},
		{domain.ErrParse, http.StatusUnprocessableEntity},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrModelUnavailable, http.StatusServiceUnavailable},
		{domain.ErrUnsupportedLanguage, http.StatusBadRequest},
		{domain.ErrNothingToExport, http.StatusConflict},
		{domain.ErrTranslation, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, _ := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}
