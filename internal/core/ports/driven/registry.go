package driven

import (
	"context"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// ExtractorRegistry selects the appropriate extractor for a document.
// It maintains a priority-ordered list of extractors per MIME type.
type ExtractorRegistry interface {
	// Extract decodes a document using the best matching extractor.
	// Returns domain.ErrUnsupportedType if no extractor handles the MIME type.
	Extract(ctx context.Context, doc *domain.SourceDocument) (*ExtractResult, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
