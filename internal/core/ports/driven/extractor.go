package driven

import (
	"context"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// Extractor converts a binary document into raw text.
// Each extractor handles specific MIME types (e.g., PDF, Word).
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract decodes the document into raw, un-normalised text.
	Extract(ctx context.Context, doc *domain.SourceDocument) (*ExtractResult, error)
}

// ExtractResult contains the output of extraction.
type ExtractResult struct {
	// Text is the raw decoded text.
	Text string

	// DocumentType is the decoder family that produced Text.
	DocumentType domain.DocumentType

	// Degraded is true when Text is a placeholder because decoding failed.
	Degraded bool
}
