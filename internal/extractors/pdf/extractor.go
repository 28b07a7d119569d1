// Package pdf extracts text from PDF CVs.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// DecodeFunc converts PDF bytes to plain text.
type DecodeFunc func(data []byte) (string, error)

// Extractor handles PDF documents.
//
// Decoder failures are not returned: the extractor yields a placeholder
// naming the byte length and marks the result degraded. Word and plain
// text extractors fail instead; the asymmetry is intentional.
type Extractor struct {
	decode DecodeFunc
}

// New creates a PDF extractor backed by github.com/ledongthuc/pdf.
func New() *Extractor {
	return &Extractor{decode: decode}
}

// NewWithDecoder creates a PDF extractor with a custom decoder.
// This is primarily used for testing.
func NewWithDecoder(fn DecodeFunc) *Extractor {
	return &Extractor{decode: fn}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MIMETypePDF}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract decodes a PDF document.
func (e *Extractor) Extract(_ context.Context, doc *domain.SourceDocument) (*driven.ExtractResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := e.safeDecode(doc.Content)
	if err != nil {
		logger.Warn("pdf: decode failed for %d bytes, using placeholder: %v", len(doc.Content), err)
		return &driven.ExtractResult{
			Text:         Placeholder(len(doc.Content)),
			DocumentType: domain.DocumentTypePDF,
			Degraded:     true,
		}, nil
	}

	return &driven.ExtractResult{
		Text:         text,
		DocumentType: domain.DocumentTypePDF,
	}, nil
}

// Placeholder is the text returned for a PDF that could not be decoded.
func Placeholder(size int) string {
	return fmt.Sprintf("[PDF document: %d bytes - text extraction unavailable]", size)
}

// safeDecode runs the decoder, converting panics on malformed input into errors.
func (e *Extractor) safeDecode(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf decoder panic: %v", r)
		}
	}()
	return e.decode(data)
}

// decode extracts the plain text of every page.
func decode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
