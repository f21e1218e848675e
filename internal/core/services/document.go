package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wortlens/internal/core/analysis"
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/core/ports/driving"
	"github.com/custodia-labs/wortlens/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DefaultMaxDocumentBytes bounds uploads when no limit is configured.
const DefaultMaxDocumentBytes = 20 << 20

// DocumentService extracts uploaded documents and keeps them as sessions.
type DocumentService struct {
	extractors driven.ExtractorRegistry
	sessions   driven.SessionStore
	maxBytes   int64
	now        func() time.Time
}

// NewDocumentService creates a new document service.
// maxBytes <= 0 uses DefaultMaxDocumentBytes.
func NewDocumentService(
	extractors driven.ExtractorRegistry,
	sessions driven.SessionStore,
	maxBytes int64,
) *DocumentService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}
	return &DocumentService{
		extractors: extractors,
		sessions:   sessions,
		maxBytes:   maxBytes,
		now:        time.Now,
	}
}

// Extract returns the text of a document without creating a session.
func (s *DocumentService) Extract(ctx context.Context, doc domain.Document) (string, error) {
	if int64(doc.Size()) > s.maxBytes {
		return "", fmt.Errorf("%s is %d bytes, limit is %d: %w", doc.Name, doc.Size(), s.maxBytes, domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.extractors.Extract(ctx, &doc)
}

// Load extracts and normalises a document and stores the result as a session.
func (s *DocumentService) Load(ctx context.Context, name string, content []byte) (*domain.Session, error) {
	doc := domain.NewDocument(name, content)

	text, err := s.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &domain.Session{
		ID:         uuid.NewString(),
		Name:       doc.Name,
		Format:     doc.Format,
		Size:       doc.Size(),
		Text:       text,
		Normalized: analysis.Normalize(text),
		CreatedAt:  now,
		AccessedAt: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Debug("Loaded %s as session %s (%s, %d chars)", doc.Name, session.ID, doc.Format, len(text))
	return session, nil
}

// Get retrieves a session by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// List returns all live sessions.
func (s *DocumentService) List(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.List(ctx)
}

// SetTranslation records the latest translation on a session.
func (s *DocumentService) SetTranslation(
	ctx context.Context,
	id, translation string,
	source, target domain.Language,
) error {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return err
	}
	session.Translation = translation
	session.TranslationSource = source
	session.TranslationTarget = target
	return s.sessions.Save(ctx, session)
}

// Discard removes a session.
func (s *DocumentService) Discard(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
