package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wortlens/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for wortlens.
type Server struct {
	ports    *Ports
	defaults Defaults
	server   *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, defaults Defaults) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if defaults.Top <= 0 {
		defaults.Top = 10
	}

	impl := &mcp.Implementation{
		Name:    "wortlens",
		Version: Version,
	}

	s := &Server{
		ports:    ports,
		defaults: defaults,
		server:   mcp.NewServer(impl, nil),
	}

	s.registerTools()
	if ports.Documents != nil {
		s.registerResources()
	}

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on addr.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		if err := httpServer.Shutdown(context.Background()); err != nil {
			logger.Warn("MCP server shutdown: %v", err)
		}
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
