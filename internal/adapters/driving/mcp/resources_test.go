package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

func TestExtractCVID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid cv URI", uri: "cvkit://cvs/cv-123", expected: "cv-123"},
		{name: "invalid prefix", uri: "file://cvs/cv-123", expected: ""},
		{name: "nested path", uri: "cvkit://cvs/cv-123/text", expected: ""},
		{name: "list URI", uri: "cvkit://cvs", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractCVID(tt.uri))
		})
	}
}

func newReadRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCVsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists cvs", func(t *testing.T) {
		cvService := &mockCVService{cvs: []domain.CV{
			{ID: "cv-1", Filename: "a.pdf", BasicInfo: domain.BasicInfo{Name: "Jane Doe"}},
			{ID: "cv-2", Filename: "b.docx"},
		}}
		server, err := NewServer(&Ports{Parser: &mockParserService{}, CV: cvService})
		require.NoError(t, err)

		result, err := server.handleCVsResource(ctx, newReadRequest("cvkit://cvs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []map[string]string
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 2)
		assert.Equal(t, "cv-1", infos[0]["id"])
		assert.Equal(t, "Jane Doe", infos[0]["name"])
		assert.Equal(t, "cvkit://cvs/cv-2", infos[1]["uri"])
	})

	t.Run("list error is returned", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: &mockParserService{}, CV: &mockCVService{err: errors.New("db down")}})
		require.NoError(t, err)

		_, err = server.handleCVsResource(ctx, newReadRequest("cvkit://cvs"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestServer_handleCVResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns cv json", func(t *testing.T) {
		cvService := &mockCVService{cv: &domain.CV{ID: "cv-1", Text: "hello"}}
		server, err := NewServer(&Ports{Parser: &mockParserService{}, CV: cvService})
		require.NoError(t, err)

		result, err := server.handleCVResource(ctx, newReadRequest("cvkit://cvs/cv-1"))

		require.NoError(t, err)
		var cv domain.CV
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &cv))
		assert.Equal(t, "cv-1", cv.ID)
		assert.Equal(t, "hello", cv.Text)
	})

	t.Run("missing cv is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: &mockParserService{}, CV: &mockCVService{err: domain.ErrNotFound}})
		require.NoError(t, err)

		_, err = server.handleCVResource(ctx, newReadRequest("cvkit://cvs/nope"))

		assert.Error(t, err)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: &mockParserService{}, CV: &mockCVService{}})
		require.NoError(t, err)

		_, err = server.handleCVResource(ctx, newReadRequest("cvkit://other/cv-1"))

		assert.Error(t, err)
	})
}
