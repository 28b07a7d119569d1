package mcp

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/services"
	"github.com/custodia-labs/cvkit/internal/extractors"
)

func TestServer_handleParseCV(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes content and returns parsed fields", func(t *testing.T) {
		parser := &mockParserService{
			parsed: &domain.ParsedCV{
				Text:         "Jane Doe\njane@example.com",
				BasicInfo:    domain.BasicInfo{Name: "Jane Doe", Email: "jane@example.com"},
				DocumentType: domain.DocumentTypeText,
				ContentHash:  "abc",
			},
		}
		server, err := NewServer(&Ports{Parser: parser})
		require.NoError(t, err)

		input := ParseCVInput{
			Content:  base64.StdEncoding.EncodeToString([]byte("Jane Doe\njane@example.com")),
			MIMEType: domain.MIMETypeText,
			Filename: "jane.txt",
		}
		_, output, err := server.handleParseCV(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", output.Name)
		assert.Equal(t, "jane@example.com", output.Email)
		assert.Equal(t, "text", output.DocumentType)
		assert.Equal(t, "abc", output.ContentHash)
		require.NotNil(t, parser.lastDoc)
		assert.Equal(t, []byte("Jane Doe\njane@example.com"), parser.lastDoc.Content)
		assert.Equal(t, "jane.txt", parser.lastDoc.Filename)
	})

	t.Run("invalid base64 is rejected", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: &mockParserService{}})
		require.NoError(t, err)

		_, _, err = server.handleParseCV(ctx, nil, ParseCVInput{Content: "%%%", MIMEType: domain.MIMETypeText})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("parser errors are returned", func(t *testing.T) {
		server, err := NewServer(&Ports{Parser: &mockParserService{err: domain.ErrUnsupportedType}})
		require.NoError(t, err)

		_, _, err = server.handleParseCV(ctx, nil, ParseCVInput{MIMEType: "image/png"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestServer_handleParseCV_WithParserService(t *testing.T) {
	registry := services.NewExtractorRegistry()
	extractors.RegisterDefaults(registry)
	parser := services.NewParserService(services.NewValidator(0), registry, nil)

	server, err := NewServer(&Ports{Parser: parser})
	require.NoError(t, err)

	content := "Jane Doe\r\njane.doe@example.com\r\n+62 812-3456-7890"
	_, output, err := server.handleParseCV(context.Background(), nil, ParseCVInput{
		Content:  base64.StdEncoding.EncodeToString([]byte(content)),
		MIMEType: "text/plain; charset=utf-8",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", output.Name)
	assert.Equal(t, "jane.doe@example.com", output.Email)
	assert.Contains(t, output.Phone, "+62")
	assert.NotContains(t, output.Text, "\r")
	assert.False(t, output.Degraded)
}

func TestServer_handleExtractBasicInfo(t *testing.T) {
	parser := &mockParserService{info: domain.BasicInfo{Name: "Jane Doe", Phone: "0812"}}
	server, err := NewServer(&Ports{Parser: parser})
	require.NoError(t, err)

	_, output, err := server.handleExtractBasicInfo(context.Background(), nil, ExtractBasicInfoInput{Text: "x"})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", output.Name)
	assert.Empty(t, output.Email)
	assert.Equal(t, "0812", output.Phone)
}
