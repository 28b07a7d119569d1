package extractors

import (
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
	"github.com/custodia-labs/cvkit/internal/extractors/pdf"
	"github.com/custodia-labs/cvkit/internal/extractors/plaintext"
	"github.com/custodia-labs/cvkit/internal/extractors/word"
)

// RegisterDefaults registers all built-in extractors with the registry.
// Call this during application initialisation.
func RegisterDefaults(r driven.ExtractorRegistry) {
	r.Register(pdf.New())
	r.Register(word.New())
	r.Register(plaintext.New())
}
