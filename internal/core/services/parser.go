package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/custodia-labs/cvkit/internal/basicinfo"
	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
	"github.com/custodia-labs/cvkit/internal/core/ports/driving"
	"github.com/custodia-labs/cvkit/internal/logger"
	"github.com/custodia-labs/cvkit/internal/textnorm"
)

// Ensure ParserService implements the interface.
var _ driving.ParserService = (*ParserService)(nil)

// ParserService turns uploaded CVs into normalised text and basic info.
type ParserService struct {
	validator *Validator
	registry  driven.ExtractorRegistry
	cache     driven.ParseCache // Optional
}

// NewParserService creates a parser service.
// cache may be nil, in which case every document is decoded.
func NewParserService(
	validator *Validator,
	registry driven.ExtractorRegistry,
	cache driven.ParseCache,
) *ParserService {
	if validator == nil {
		validator = NewValidator(0)
	}
	return &ParserService{
		validator: validator,
		registry:  registry,
		cache:     cache,
	}
}

// Validate checks size and MIME type without decoding.
func (s *ParserService) Validate(doc *domain.SourceDocument) (domain.Validation, error) {
	return s.validator.Validate(doc)
}

// Parse validates, decodes, normalises and extracts basic info.
// Cache errors are logged and treated as misses.
func (s *ParserService) Parse(ctx context.Context, doc *domain.SourceDocument) (*domain.ParsedCV, error) {
	logger.Section("CV Parse")

	if _, err := s.validator.Validate(doc); err != nil {
		logger.Debug("Rejected: %v", err)
		return nil, err
	}

	docType, _ := domain.DocumentTypeFor(doc.MIMEType)
	hash := ContentHash(doc.Content)
	key := cacheKey(docType, hash)
	logger.Debug("File: %q, type: %s, size: %d, hash: %s", doc.Filename, docType, doc.ByteSize(), hash)

	if cached := s.cached(ctx, key); cached != nil {
		logger.Debug("Parse cache hit")
		return cached, nil
	}

	text, result, err := s.extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	info := basicinfo.Extract(text)
	logger.Debug("Basic info: name=%q email=%q phone=%q", info.Name, info.Email, info.Phone)

	parsed := &domain.ParsedCV{
		Text:         text,
		BasicInfo:    info,
		DocumentType: result.DocumentType,
		Degraded:     result.Degraded,
		ContentHash:  hash,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, parsed); err != nil {
			logger.Warn("parse cache set failed: %v", err)
		}
	}

	return parsed, nil
}

// ExtractText validates, decodes and normalises a document.
func (s *ParserService) ExtractText(ctx context.Context, doc *domain.SourceDocument) (string, error) {
	if _, err := s.validator.Validate(doc); err != nil {
		return "", err
	}
	text, _, err := s.extract(ctx, doc)
	return text, err
}

// ExtractBasicInfo runs the basic-info heuristics over normalised text.
func (s *ParserService) ExtractBasicInfo(text string) domain.BasicInfo {
	return basicinfo.Extract(text)
}

// SupportedMIMETypes returns all MIME types that can be parsed.
func (s *ParserService) SupportedMIMETypes() []string {
	if s.registry == nil {
		return nil
	}
	return s.registry.SupportedMIMETypes()
}

// extract runs the registry and normalises the result.
func (s *ParserService) extract(ctx context.Context, doc *domain.SourceDocument) (string, *driven.ExtractResult, error) {
	if s.registry == nil {
		return "", nil, domain.ErrNotImplemented
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	result, err := s.registry.Extract(ctx, doc)
	if err != nil {
		return "", nil, fmt.Errorf("extract %q: %w", doc.Filename, err)
	}
	if result.Degraded {
		logger.Warn("%q decoded in degraded mode", doc.Filename)
	}

	text := textnorm.Normalise(result.Text)
	logger.Debug("Extracted %d raw chars, %d normalised", len(result.Text), len(text))
	return text, result, nil
}

func (s *ParserService) cached(ctx context.Context, key string) *domain.ParsedCV {
	if s.cache == nil {
		return nil
	}
	parsed, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("parse cache get failed: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	return parsed
}

// ContentHash returns the hex SHA-256 of content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// cacheKey scopes the hash by document type; identical bytes declared as
// a different format decode differently.
func cacheKey(docType domain.DocumentType, hash string) string {
	return docType.String() + ":" + hash
}
