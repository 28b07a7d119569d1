package driving

import (
	"context"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// CVService manages the intake and storage of CVs.
type CVService interface {
	// Ingest parses a document and persists the result.
	// Re-uploading identical bytes returns the existing CV.
	Ingest(ctx context.Context, doc *domain.SourceDocument) (*domain.CV, error)

	// Get retrieves a CV by ID.
	Get(ctx context.Context, id string) (*domain.CV, error)

	// List returns stored CVs, newest first.
	List(ctx context.Context, limit, offset int) ([]domain.CV, error)

	// Delete removes a CV.
	Delete(ctx context.Context, id string) error

	// Analyse requests an LLM review of a stored CV and persists it.
	Analyse(ctx context.Context, id string) (*domain.CV, error)
}
