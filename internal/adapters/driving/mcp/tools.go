package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// ParseCVInput is the input schema for the parse_cv tool.
type ParseCVInput struct {
	Content  string `json:"content" jsonschema:"the CV file bytes, base64 encoded"`
	MIMEType string `json:"mime_type" jsonschema:"declared MIME type: application/pdf, application/msword, the DOCX type or text/plain"`
	Filename string `json:"filename,omitempty" jsonschema:"original file name, for logging only"`
}

// ParseCVOutput is the output schema for the parse_cv tool.
type ParseCVOutput struct {
	Text         string `json:"text"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	DocumentType string `json:"document_type"`
	Degraded     bool   `json:"degraded"`
	ContentHash  string `json:"content_hash"`
}

// ExtractBasicInfoInput is the input schema for the extract_basic_info tool.
type ExtractBasicInfoInput struct {
	Text string `json:"text" jsonschema:"plain CV text"`
}

// ExtractBasicInfoOutput is the output schema for the extract_basic_info tool.
type ExtractBasicInfoOutput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_cv",
		Description: "Extract normalised text, name, email and phone from a PDF, Word or plain-text CV",
	}, s.handleParseCV)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_basic_info",
		Description: "Find the candidate's name, email and phone in CV text",
	}, s.handleExtractBasicInfo)
}

// handleParseCV handles the parse_cv tool invocation.
func (s *Server) handleParseCV(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseCVInput,
) (*mcp.CallToolResult, ParseCVOutput, error) {
	content, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		return nil, ParseCVOutput{}, fmt.Errorf("%w: content is not valid base64", domain.ErrInvalidInput)
	}

	parsed, err := s.ports.Parser.Parse(ctx, &domain.SourceDocument{
		Filename: input.Filename,
		MIMEType: input.MIMEType,
		Content:  content,
	})
	if err != nil {
		return nil, ParseCVOutput{}, err
	}

	return nil, ParseCVOutput{
		Text:         parsed.Text,
		Name:         parsed.BasicInfo.Name,
		Email:        parsed.BasicInfo.Email,
		Phone:        parsed.BasicInfo.Phone,
		DocumentType: parsed.DocumentType.String(),
		Degraded:     parsed.Degraded,
		ContentHash:  parsed.ContentHash,
	}, nil
}

// handleExtractBasicInfo handles the extract_basic_info tool invocation.
func (s *Server) handleExtractBasicInfo(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractBasicInfoInput,
) (*mcp.CallToolResult, ExtractBasicInfoOutput, error) {
	info := s.ports.Parser.ExtractBasicInfo(input.Text)
	return nil, ExtractBasicInfoOutput{
		Name:  info.Name,
		Email: info.Email,
		Phone: info.Phone,
	}, nil
}
