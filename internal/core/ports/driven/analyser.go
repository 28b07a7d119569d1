package driven

import (
	"context"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// CVAnalyser reviews CV text with a language model.
// This is an optional service - when nil, analysis is unavailable.
type CVAnalyser interface {
	// Analyse produces feedback for the CV text.
	Analyse(ctx context.Context, text string, info domain.BasicInfo) (*domain.Analysis, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
