package extractors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps document formats to extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[domain.Format]driven.Extractor
}

// NewRegistry creates a registry holding the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		extractors: make(map[domain.Format]driven.Extractor),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor, replacing any previous one for the same format.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[extractor.Format()] = extractor
}

// Extract dispatches to the extractor registered for doc.Format.
func (r *Registry) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	r.mu.RLock()
	extractor, ok := r.extractors[doc.Format]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%s: %w", doc.Name, domain.ErrUnsupportedFormat)
	}

	logger.Debug("Extracting %s as %s (%d bytes)", doc.Name, doc.Format, doc.Size())
	text, err := extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", doc.Name, err)
	}
	return text, nil
}

// SupportedFormats returns the registered formats in a stable order.
func (r *Registry) SupportedFormats() []domain.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.Format, 0, len(r.extractors))
	for f := range r.extractors {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
