package driven

import (
	"context"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// CVStore persists parsed CVs.
// Backed by SQLite locally or Postgres when hosted.
type CVStore interface {
	// Save stores or updates a CV.
	Save(ctx context.Context, cv *domain.CV) error

	// Get retrieves a CV by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.CV, error)

	// FindByHash retrieves the most recent CV with the given content hash.
	// Returns domain.ErrNotFound if none exists.
	FindByHash(ctx context.Context, contentHash string) (*domain.CV, error)

	// List returns CVs ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]domain.CV, error)

	// Delete removes a CV.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
