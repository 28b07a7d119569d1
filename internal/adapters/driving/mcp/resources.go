package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

const (
	uriScheme = "cvkit://"

	// resourceListLimit caps the cvs listing.
	resourceListLimit = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "cvs",
		Name:        "cvs",
		Description: "Most recently stored CVs",
		MIMEType:    "application/json",
	}, s.handleCVsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "cvs/{cvId}",
		Name:        "cv",
		Description: "A stored CV with its text, basic info and analysis",
		MIMEType:    "application/json",
	}, s.handleCVResource)
}

// handleCVsResource returns a summary of stored CVs.
func (s *Server) handleCVsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cvs, err := s.ports.CV.List(ctx, resourceListLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing cvs: %w", err)
	}

	type cvInfo struct {
		ID       string `json:"id"`
		Filename string `json:"filename"`
		Name     string `json:"name,omitempty"`
		Email    string `json:"email,omitempty"`
		URI      string `json:"uri"`
	}

	infos := make([]cvInfo, len(cvs))
	for i := range cvs {
		infos[i] = cvInfo{
			ID:       cvs[i].ID,
			Filename: cvs[i].Filename,
			Name:     cvs[i].BasicInfo.Name,
			Email:    cvs[i].BasicInfo.Email,
			URI:      uriScheme + "cvs/" + cvs[i].ID,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleCVResource returns a single stored CV.
func (s *Server) handleCVResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractCVID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	cv, err := s.ports.CV.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting cv: %w", err)
	}

	return jsonResource(req.Params.URI, cv)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCVID extracts the CV ID from a URI like cvkit://cvs/{cvId}.
func extractCVID(uri string) string {
	const prefix = uriScheme + "cvs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
