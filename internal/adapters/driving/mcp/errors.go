// Package mcp provides an MCP (Model Context Protocol) server adapter for cvkit.
// It lets AI assistants parse CVs and browse stored CVs.
package mcp

import "errors"

// ErrMissingParserService is returned when the parser service is not provided.
var ErrMissingParserService = errors.New("mcp: parser service is required")
