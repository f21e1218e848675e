package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
)

// sessionResponse is the JSON form of a session.
type sessionResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Format            string    `json:"format"`
	Size              int       `json:"size"`
	Text              string    `json:"text,omitempty"`
	Normalized        string    `json:"normalized,omitempty"`
	Translation       string    `json:"translation,omitempty"`
	TranslationSource string    `json:"translation_source,omitempty"`
	TranslationTarget string    `json:"translation_target,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toSessionResponse(s *domain.Session, withText bool) sessionResponse {
	resp := sessionResponse{
		ID:                s.ID,
		Name:              s.Name,
		Format:            s.Format.String(),
		Size:              s.Size,
		Translation:       s.Translation,
		TranslationSource: s.TranslationSource.String(),
		TranslationTarget: s.TranslationTarget.String(),
		CreatedAt:         s.CreatedAt,
	}
	if withText {
		resp.Text = s.Text
		resp.Normalized = s.Normalized
	}
	return resp
}

type translateRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
	Error  string `json:"error,omitempty"`
}

type languageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"model":       s.ports.Analysis.ModelAvailable(),
		"translation": s.ports.Translation.Provider(),
	})
}

func (s *Server) languages(c *gin.Context) {
	langs := s.ports.Translation.Languages()
	out := make([]languageResponse, 0, len(langs))
	for _, l := range langs {
		out = append(out, languageResponse{Code: l.String(), Name: l.Name()})
	}
	c.JSON(http.StatusOK, gin.H{
		"languages": out,
		"source":    s.config.Source.String(),
		"target":    s.config.Target.String(),
		"provider":  s.ports.Translation.Provider(),
	})
}

func (s *Server) uploadDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUploadBytes+1<<20)

	header, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		s.uploadTooLarge(c)
		return
	case err != nil:
		BadRequest(c, "multipart field \"file\" is required")
		return
	case header.Size > s.config.MaxUploadBytes:
		s.uploadTooLarge(c)
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, fmt.Errorf("opening upload: %w", err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, s.config.MaxUploadBytes+1))
	if err != nil {
		respondError(c, fmt.Errorf("reading upload: %w", err))
		return
	}

	session, err := s.ports.Documents.Load(c.Request.Context(), filepath.Base(header.Filename), content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(session, true))
}

func (s *Server) uploadTooLarge(c *gin.Context) {
	JSONError(c, http.StatusRequestEntityTooLarge, "too_large",
		fmt.Sprintf("document exceeds %d bytes", s.config.MaxUploadBytes))
}

func (s *Server) listDocuments(c *gin.Context) {
	sessions, err := s.ports.Documents.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i], false))
	}
	c.JSON(http.StatusOK, gin.H{"documents": out})
}

func (s *Server) getDocument(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session, true))
}

func (s *Server) deleteDocument(c *gin.Context) {
	if err := s.ports.Documents.Discard(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) frequency(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	top, ok := s.queryTop(c)
	if !ok {
		return
	}

	table, err := s.ports.Analysis.Frequency(c.Request.Context(), session.Normalized)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    table.Total(),
		"distinct": len(table),
		"entries":  table.Top(top),
	})
}

func (s *Server) pos(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	counts, err := s.ports.Analysis.POS(c.Request.Context(), session.Normalized)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": counts.Sorted()})
}

func (s *Server) expand(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	categories, ok := queryCategories(c)
	if !ok {
		return
	}
	groups, err := s.ports.Analysis.Expand(c.Request.Context(), session.Normalized, categories)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": groups})
}

func (s *Server) report(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	top, ok := s.queryTop(c)
	if !ok {
		return
	}
	categories, ok := queryCategories(c)
	if !ok {
		return
	}

	opts := domain.ReportOptions{Top: top, Categories: categories}
	if s.ports.Analysis.ModelAvailable() {
		opts.IncludePOS = true
		if len(opts.Categories) == 0 {
			opts.Categories = domain.DefaultCategories()
		}
	}

	report, err := s.ports.Analysis.Report(c.Request.Context(), session.Text, session.Normalized, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) translate(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var req translateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "invalid JSON body: "+err.Error())
			return
		}
	}

	source, target := s.config.Source, s.config.Target
	if req.Source != "" {
		source = domain.Language(req.Source)
	}
	if req.Target != "" {
		target = domain.Language(req.Target)
	}

	ctx := c.Request.Context()
	text, err := s.ports.Translation.Translate(ctx, session.Text, source, target)
	if err != nil {
		if status, _ := statusFor(err); status == http.StatusBadRequest {
			respondError(c, err)
			return
		}
		// Translation failures are shown to the user in place of the result.
		c.JSON(http.StatusOK, translateResponse{
			Text:   domain.TranslationFailureText(err),
			Source: source.String(),
			Target: target.String(),
			Error:  err.Error(),
		})
		return
	}

	if err := s.ports.Documents.SetTranslation(ctx, session.ID, text, source, target); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, translateResponse{Text: text, Source: source.String(), Target: target.String()})
}

func (s *Server) exportFrequency(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	table, err := s.ports.Analysis.Frequency(c.Request.Context(), session.Normalized)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := s.ports.Export.WriteFrequencyCSV(&buf, table); err != nil {
		respondError(c, err)
		return
	}
	attachment(c, driving.DefaultFrequencyFile)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) exportTranslation(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.ports.Export.WriteTranslation(&buf, session.Translation); err != nil {
		respondError(c, err)
		return
	}
	attachment(c, driving.DefaultTranslationFile)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// session loads the session named by the :id parameter, writing the error
// response when it cannot.
func (s *Server) session(c *gin.Context) (*domain.Session, bool) {
	session, err := s.ports.Documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return session, true
}

func (s *Server) queryTop(c *gin.Context) (int, bool) {
	raw := c.Query("top")
	if raw == "" {
		return s.config.Top, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		BadRequest(c, "top must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func queryCategories(c *gin.Context) ([]domain.Category, bool) {
	raw := c.Query("categories")
	if raw == "" {
		return nil, true
	}
	categories, err := domain.ParseCategories(strings.Split(raw, ","))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return categories, true
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}
