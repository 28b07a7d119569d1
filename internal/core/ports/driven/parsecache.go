package driven

import (
	"context"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// ParseCache stores parse results keyed by source content hash.
// Cache failures must never fail a parse; callers treat errors as misses.
type ParseCache interface {
	// Get returns the cached result and true on a hit.
	Get(ctx context.Context, key string) (*domain.ParsedCV, bool, error)

	// Set stores a result.
	Set(ctx context.Context, key string, parsed *domain.ParsedCV) error
}
