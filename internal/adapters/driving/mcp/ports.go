package mcp

import (
	"github.com/custodia-labs/cvkit/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Parser parses uploaded CVs.
	Parser driving.ParserService

	// CV exposes stored CVs as resources. Optional.
	CV driving.CVService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Parser == nil {
		return ErrMissingParserService
	}
	return nil
}
