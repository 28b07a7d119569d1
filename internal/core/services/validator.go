package services

import (
	"fmt"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// Validator enforces upload size and type limits before any decoding.
// It has no side effects and is safe for concurrent use.
type Validator struct {
	maxSize int64
}

// NewValidator creates a validator with the given size limit in bytes.
// A non-positive limit falls back to domain.DefaultMaxFileSize.
func NewValidator(maxSize int64) *Validator {
	if maxSize <= 0 {
		maxSize = domain.DefaultMaxFileSize
	}
	return &Validator{maxSize: maxSize}
}

// MaxSize returns the configured size limit in bytes.
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}

// Validate checks size first, then MIME type.
// The error wraps domain.ErrOversizeFile or domain.ErrUnsupportedType.
func (v *Validator) Validate(doc *domain.SourceDocument) (domain.Validation, error) {
	if doc == nil {
		return domain.Validation{Reason: "no document"}, domain.ErrInvalidInput
	}

	if size := doc.ByteSize(); size > v.maxSize {
		err := fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", domain.ErrOversizeFile, size, v.maxSize)
		return domain.Validation{Reason: err.Error()}, err
	}

	if _, ok := domain.DocumentTypeFor(doc.MIMEType); !ok {
		err := fmt.Errorf("%w: %q", domain.ErrUnsupportedType, doc.MIMEType)
		return domain.Validation{Reason: err.Error()}, err
	}

	return domain.Validation{Valid: true}, nil
}
