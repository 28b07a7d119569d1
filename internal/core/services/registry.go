package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
)

// Ensure ExtractorRegistry implements the interface.
var _ driven.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry dispatches documents to extractors by MIME type.
// When several extractors claim a type the highest priority wins;
// ties keep registration order.
type ExtractorRegistry struct {
	mu     sync.RWMutex
	byMIME map[string][]driven.Extractor
}

// NewExtractorRegistry creates an empty registry.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		byMIME: make(map[string][]driven.Extractor),
	}
}

// Register adds an extractor for each MIME type it supports.
func (r *ExtractorRegistry) Register(extractor driven.Extractor) {
	if extractor == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range extractor.SupportedMIMETypes() {
		key := domain.BaseMIMEType(mimeType)
		list := append(r.byMIME[key], extractor)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byMIME[key] = list
	}
}

// Extract decodes a document using the best matching extractor.
func (r *ExtractorRegistry) Extract(ctx context.Context, doc *domain.SourceDocument) (*driven.ExtractResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	extractor := r.lookup(doc.MIMEType)
	if extractor == nil {
		return nil, fmt.Errorf("%w: no extractor for %q", domain.ErrUnsupportedType, doc.MIMEType)
	}
	return extractor.Extract(ctx, doc)
}

// SupportedMIMETypes returns all MIME types that can be extracted, sorted.
func (r *ExtractorRegistry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for mimeType := range r.byMIME {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

func (r *ExtractorRegistry) lookup(mimeType string) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byMIME[domain.BaseMIMEType(mimeType)]
	if len(list) == 0 {
		return nil
	}
	return list[0]
}
