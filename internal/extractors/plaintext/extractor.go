// Package plaintext extracts text from plain text CVs.
package plaintext

import (
	"context"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
// Content must be valid UTF-8; a UTF-8 or UTF-16 byte order mark is
// honoured and stripped.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MIMETypeText}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract decodes the bytes as text.
func (e *Extractor) Extract(_ context.Context, doc *domain.SourceDocument) (*driven.ExtractResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	decoder := unicode.BOMOverride(encoding.UTF8Validator)
	content, _, err := transform.Bytes(decoder, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid text encoding: %v", domain.ErrDecodeFailure, err)
	}

	return &driven.ExtractResult{
		Text:         string(content),
		DocumentType: domain.DocumentTypeText,
	}, nil
}
