package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvkit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// mockAnalyser implements driven.CVAnalyser for testing.
type mockAnalyser struct {
	summary string
	err     error
	calls   int
}

func (m *mockAnalyser) Analyse(_ context.Context, text string, _ domain.BasicInfo) (*domain.Analysis, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Analysis{Summary: m.summary + ": " + text, Model: "mock", CreatedAt: time.Now()}, nil
}

func (m *mockAnalyser) ModelName() string { return "mock" }
func (m *mockAnalyser) Close() error      { return nil }

func newTestCVService(t *testing.T) (*CVService, *memory.CVStore) {
	t.Helper()
	store := memory.NewCVStore()
	return NewCVService(newTestParser(t), store), store
}

func TestNewCVService(t *testing.T) {
	service, _ := newTestCVService(t)
	require.NotNil(t, service)
	assert.NotNil(t, service.parser)
	assert.NotNil(t, service.store)
	assert.Nil(t, service.analyser)
}

func TestCVService_Ingest(t *testing.T) {
	service, store := newTestCVService(t)
	ctx := context.Background()

	cv, err := service.Ingest(ctx, &domain.SourceDocument{
		Filename: "jane.txt",
		MIMEType: "text/plain; charset=utf-8",
		Content:  []byte("Jane Doe\njane.doe@example.com\n+62 812-3456-7890"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, cv.ID)
	assert.Equal(t, "jane.txt", cv.Filename)
	assert.Equal(t, "text/plain", cv.MIMEType)
	assert.Equal(t, "Jane Doe", cv.BasicInfo.Name)
	assert.Equal(t, domain.DocumentTypeText, cv.DocumentType)
	assert.False(t, cv.CreatedAt.IsZero())
	assert.Nil(t, cv.Analysis)

	stored, err := store.Get(ctx, cv.ID)
	require.NoError(t, err)
	assert.Equal(t, cv.ContentHash, stored.ContentHash)
}

func TestCVService_Ingest_DeduplicatesByContent(t *testing.T) {
	service, store := newTestCVService(t)
	ctx := context.Background()

	first, err := service.Ingest(ctx, textDoc("Jane Doe"))
	require.NoError(t, err)
	second, err := service.Ingest(ctx, textDoc("Jane Doe"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	all, err := store.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCVService_Ingest_ValidationError(t *testing.T) {
	service, store := newTestCVService(t)
	ctx := context.Background()

	_, err := service.Ingest(ctx, &domain.SourceDocument{MIMEType: "image/png", Content: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	all, err := store.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCVService_Ingest_AutoAnalyse(t *testing.T) {
	service, _ := newTestCVService(t)
	analyser := &mockAnalyser{summary: "looks good"}
	service.SetAnalyser(analyser, true)

	cv, err := service.Ingest(context.Background(), textDoc("Jane Doe"))

	require.NoError(t, err)
	require.NotNil(t, cv.Analysis)
	assert.Equal(t, "looks good: Jane Doe", cv.Analysis.Summary)
	assert.Equal(t, 1, analyser.calls)
}

func TestCVService_Ingest_AnalyserFailureDoesNotFail(t *testing.T) {
	service, _ := newTestCVService(t)
	service.SetAnalyser(&mockAnalyser{err: errors.New("rate limited")}, true)

	cv, err := service.Ingest(context.Background(), textDoc("Jane Doe"))

	require.NoError(t, err)
	assert.Nil(t, cv.Analysis)
}

func TestCVService_Ingest_NoAutoAnalyse(t *testing.T) {
	service, _ := newTestCVService(t)
	analyser := &mockAnalyser{}
	service.SetAnalyser(analyser, false)

	_, err := service.Ingest(context.Background(), textDoc("Jane Doe"))

	require.NoError(t, err)
	assert.Zero(t, analyser.calls)
}

func TestCVService_Ingest_NotConfigured(t *testing.T) {
	_, err := NewCVService(nil, nil).Ingest(context.Background(), textDoc("x"))
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestCVService_GetListDelete(t *testing.T) {
	service, _ := newTestCVService(t)
	ctx := context.Background()
	base := time.Now()
	tick := 0
	service.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	a, err := service.Ingest(ctx, textDoc("Alice Smith"))
	require.NoError(t, err)
	b, err := service.Ingest(ctx, textDoc("Bob Jones"))
	require.NoError(t, err)

	got, err := service.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.BasicInfo.Name)

	list, err := service.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	require.NoError(t, service.Delete(ctx, a.ID))
	_, err = service.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCVService_InvalidInput(t *testing.T) {
	service, _ := newTestCVService(t)
	ctx := context.Background()

	_, err := service.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Delete(ctx, ""), domain.ErrInvalidInput)
	_, err = service.List(ctx, 10, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCVService_Analyse(t *testing.T) {
	service, store := newTestCVService(t)
	ctx := context.Background()
	cv, err := service.Ingest(ctx, textDoc("Jane Doe"))
	require.NoError(t, err)

	_, err = service.Analyse(ctx, cv.ID)
	assert.ErrorIs(t, err, domain.ErrAnalyserUnavailable)

	service.SetAnalyser(&mockAnalyser{summary: "ok"}, false)
	analysed, err := service.Analyse(ctx, cv.ID)
	require.NoError(t, err)
	require.NotNil(t, analysed.Analysis)
	assert.Equal(t, "mock", analysed.Analysis.Model)

	stored, err := store.Get(ctx, cv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Analysis)
	assert.Equal(t, "ok: Jane Doe", stored.Analysis.Summary)

	_, err = service.Analyse(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCVService_Analyse_Error(t *testing.T) {
	service, _ := newTestCVService(t)
	ctx := context.Background()
	cv, err := service.Ingest(ctx, textDoc("Jane Doe"))
	require.NoError(t, err)

	boom := errors.New("upstream 500")
	service.SetAnalyser(&mockAnalyser{err: boom}, false)

	_, err = service.Analyse(ctx, cv.ID)
	assert.ErrorIs(t, err, boom)
}
