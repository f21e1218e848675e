package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/custodia-labs/wortlens/internal/logger"
)

// DefaultMaxUploadBytes bounds uploads when Config.MaxUploadBytes is zero.
const DefaultMaxUploadBytes = 20 << 20

const shutdownTimeout = 10 * time.Second

// Server serves the JSON API.
type Server struct {
	ports  *Ports
	config Config
	engine *gin.Engine
}

// NewServer creates the API server and registers its routes.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if cfg.JSONLogs {
		logger.SetJSON(true)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxUploadBytes
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{ports: ports, config: cfg, engine: engine}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/languages", s.languages)

		documents := v1.Group("/documents")
		{
			documents.POST("", s.uploadDocument)
			documents.GET("", s.listDocuments)
			documents.GET("/:id", s.getDocument)
			documents.DELETE("/:id", s.deleteDocument)
			documents.GET("/:id/frequency", s.frequency)
			documents.GET("/:id/pos", s.pos)
			documents.GET("/:id/expand", s.expand)
			documents.GET("/:id/report", s.report)
			documents.POST("/:id/translate", s.translate)
			documents.GET("/:id/export/frequency.csv", s.exportFrequency)
			documents.GET("/:id/export/translation.txt", s.exportTranslation)
		}
	}
}

// Handler returns the routes wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		ExposedHeaders: []string{"Content-Disposition"},
	})
	return c.Handler(s.engine)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request through the application logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(map[string]any{
			"status":   c.Writer.Status(),
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"duration": time.Since(start).Round(time.Microsecond).String(),
		}).Info("request")
	}
}
