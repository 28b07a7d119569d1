package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
	"github.com/custodia-labs/cvkit/internal/core/ports/driving"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// Ensure CVService implements the interface.
var _ driving.CVService = (*CVService)(nil)

// CVService manages the intake and storage of CVs.
type CVService struct {
	parser      driving.ParserService
	store       driven.CVStore
	analyser    driven.CVAnalyser // Optional
	autoAnalyse bool
	now         func() time.Time
}

// NewCVService creates a new CV service.
func NewCVService(parser driving.ParserService, store driven.CVStore) *CVService {
	return &CVService{
		parser: parser,
		store:  store,
		now:    time.Now,
	}
}

// SetAnalyser configures the optional LLM analyser.
// When auto is true every ingested CV is analysed.
func (s *CVService) SetAnalyser(analyser driven.CVAnalyser, auto bool) {
	s.analyser = analyser
	s.autoAnalyse = auto
}

// Ingest parses a document and persists the result.
// Identical bytes return the CV already stored for them.
func (s *CVService) Ingest(ctx context.Context, doc *domain.SourceDocument) (*domain.CV, error) {
	if s.parser == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	parsed, err := s.parser.Parse(ctx, doc)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByHash(ctx, parsed.ContentHash)
	switch {
	case err == nil:
		logger.Debug("CV %s already stored for hash %s", existing.ID, parsed.ContentHash)
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find by hash: %w", err)
	}

	now := s.now()
	cv := &domain.CV{
		ID:           uuid.New().String(),
		Filename:     doc.Filename,
		MIMEType:     domain.BaseMIMEType(doc.MIMEType),
		Size:         doc.ByteSize(),
		ContentHash:  parsed.ContentHash,
		DocumentType: parsed.DocumentType,
		Text:         parsed.Text,
		BasicInfo:    parsed.BasicInfo,
		Degraded:     parsed.Degraded,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if s.autoAnalyse && s.analyser != nil && !parsed.Degraded {
		analysis, err := s.analyser.Analyse(ctx, cv.Text, cv.BasicInfo)
		if err != nil {
			logger.Warn("analysis of %q failed: %v", cv.Filename, err)
		} else {
			cv.Analysis = analysis
		}
	}

	if err := s.store.Save(ctx, cv); err != nil {
		return nil, fmt.Errorf("save cv: %w", err)
	}
	logger.Info("Stored CV %s (%s)", cv.ID, cv.Filename)
	return cv, nil
}

// Get retrieves a CV by ID.
func (s *CVService) Get(ctx context.Context, id string) (*domain.CV, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// List returns stored CVs, newest first.
func (s *CVService) List(ctx context.Context, limit, offset int) ([]domain.CV, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if offset < 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.store.List(ctx, limit, offset)
}

// Delete removes a CV.
func (s *CVService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}

// Analyse requests an LLM review of a stored CV and persists it.
func (s *CVService) Analyse(ctx context.Context, id string) (*domain.CV, error) {
	if s.analyser == nil {
		return nil, domain.ErrAnalyserUnavailable
	}

	cv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analyser.Analyse(ctx, cv.Text, cv.BasicInfo)
	if err != nil {
		return nil, fmt.Errorf("analyse cv %s: %w", id, err)
	}

	cv.Analysis = analysis
	cv.UpdatedAt = s.now()
	if err := s.store.Save(ctx, cv); err != nil {
		return nil, fmt.Errorf("save cv: %w", err)
	}
	return cv, nil
}
