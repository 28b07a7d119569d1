package driving

import (
	"context"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// ParserService turns uploaded CVs into normalised text and basic info.
// It holds no per-request state and is safe for concurrent use.
type ParserService interface {
	// Validate checks size and MIME type without decoding.
	// The returned error wraps domain.ErrOversizeFile or domain.ErrUnsupportedType.
	Validate(doc *domain.SourceDocument) (domain.Validation, error)

	// Parse validates, decodes, normalises and extracts basic info.
	Parse(ctx context.Context, doc *domain.SourceDocument) (*domain.ParsedCV, error)

	// ExtractText validates, decodes and normalises, without basic-info extraction.
	ExtractText(ctx context.Context, doc *domain.SourceDocument) (string, error)

	// ExtractBasicInfo runs the basic-info heuristics over already normalised text.
	ExtractBasicInfo(text string) domain.BasicInfo

	// SupportedMIMETypes returns all MIME types that can be parsed.
	SupportedMIMETypes() []string
}
