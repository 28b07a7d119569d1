package mcp

import (
	"context"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// mockParserService is a mock implementation of driving.ParserService.
type mockParserService struct {
	parsed  *domain.ParsedCV
	info    domain.BasicInfo
	err     error
	lastDoc *domain.SourceDocument
}

func (m *mockParserService) Validate(_ *domain.SourceDocument) (domain.Validation, error) {
	if m.err != nil {
		return domain.Validation{Reason: m.err.Error()}, m.err
	}
	return domain.Validation{Valid: true}, nil
}

func (m *mockParserService) Parse(_ context.Context, doc *domain.SourceDocument) (*domain.ParsedCV, error) {
	m.lastDoc = doc
	return m.parsed, m.err
}

func (m *mockParserService) ExtractText(_ context.Context, doc *domain.SourceDocument) (string, error) {
	m.lastDoc = doc
	if m.parsed == nil {
		return "", m.err
	}
	return m.parsed.Text, m.err
}

func (m *mockParserService) ExtractBasicInfo(_ string) domain.BasicInfo {
	return m.info
}

func (m *mockParserService) SupportedMIMETypes() []string {
	return domain.SupportedMIMETypes()
}

// mockCVService is a mock implementation of driving.CVService.
type mockCVService struct {
	cvs []domain.CV
	cv  *domain.CV
	err error
}

func (m *mockCVService) Ingest(_ context.Context, _ *domain.SourceDocument) (*domain.CV, error) {
	return m.cv, m.err
}

func (m *mockCVService) Get(_ context.Context, _ string) (*domain.CV, error) {
	return m.cv, m.err
}

func (m *mockCVService) List(_ context.Context, _, _ int) ([]domain.CV, error) {
	return m.cvs, m.err
}

func (m *mockCVService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockCVService) Analyse(_ context.Context, _ string) (*domain.CV, error) {
	return m.cv, m.err
}
