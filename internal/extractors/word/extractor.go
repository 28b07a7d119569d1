// Package word extracts text from Word CVs.
package word

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const documentPart = "word/document.xml"

// Extractor handles Word documents.
//
// Both the OOXML (.docx) and legacy (.doc) MIME types route here. Only the
// OOXML container is decoded; a legacy binary document fails with
// domain.ErrDecodeFailure.
type Extractor struct{}

// New creates a new Word extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		domain.MIMETypeDOCX,
		domain.MIMETypeDOC,
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract returns the raw text of the document body.
func (e *Extractor) Extract(_ context.Context, doc *domain.SourceDocument) (*driven.ExtractResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a word container: %v", domain.ErrDecodeFailure, err)
	}

	body, err := readPart(reader, documentPart)
	if err != nil {
		return nil, err
	}

	text, err := bodyText(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}

	return &driven.ExtractResult{
		Text:         text,
		DocumentType: domain.DocumentTypeWord,
	}, nil
}

// readPart reads a named part from the package.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrDecodeFailure, name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrDecodeFailure, name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: missing %s", domain.ErrDecodeFailure, name)
}

// bodyText walks the document XML and collects text runs.
// Paragraph ends and explicit breaks become newlines. Tabs inside a run
// become tabs; tab-stop definitions in paragraph properties are ignored.
func bodyText(content []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		b        strings.Builder
		inText   bool
		runDepth int
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "r":
				runDepth++
			case "tab":
				if runDepth > 0 {
					b.WriteString("\t")
				}
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}
