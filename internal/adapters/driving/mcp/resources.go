package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for wortlens resources.
	uriScheme = "wortlens://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Documents loaded in this session",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-text",
		Description: "Extracted text of a loaded document",
		MIMEType:    "text/plain",
	}, s.handleDocumentTextResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/translation",
		Name:        "document-translation",
		Description: "Latest translation of a loaded document",
		MIMEType:    "text/plain",
	}, s.handleDocumentTextResource)
}

// handleDocumentsResource lists the loaded documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessions, err := s.ports.Documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Format     string `json:"format"`
		Translated bool   `json:"translated"`
		TextURI    string `json:"text_uri"`
	}

	infos := make([]docInfo, len(sessions))
	for i := range sessions {
		infos[i] = docInfo{
			ID:         sessions[i].ID,
			Name:       sessions[i].Name,
			Format:     sessions[i].Format.String(),
			Translated: sessions[i].Translation != "",
			TextURI:    uriScheme + "documents/" + sessions[i].ID,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentTextResource returns the text or translation of a document.
func (s *Server) handleDocumentTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID, translation := parseDocumentURI(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	session, err := s.ports.Documents.Get(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	text := session.Text
	if translation {
		if session.Translation == "" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		text = session.Translation
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

// parseDocumentURI extracts the document ID from wortlens://documents/{id}
// and wortlens://documents/{id}/translation.
func parseDocumentURI(uri string) (id string, translation bool) {
	const prefix = uriScheme + "documents/"
	const suffix = "/translation"

	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(uri, prefix)
	if strings.HasSuffix(rest, suffix) {
		rest = strings.TrimSuffix(rest, suffix)
		translation = true
	}
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, translation
}
