package extractors

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

// extensionTypes maps file extensions to the MIME type assumed when
// content sniffing is inconclusive.
var extensionTypes = map[string]string{
	".pdf":  domain.MIMETypePDF,
	".docx": domain.MIMETypeDOCX,
	".doc":  domain.MIMETypeDOC,
	".txt":  domain.MIMETypeText,
	".text": domain.MIMETypeText,
}

// DetectMIMEType infers the declared type of a CV from its content, falling
// back to the filename extension. It returns application/octet-stream when
// neither identifies a supported format, which validation then rejects.
//
// A text/plain sniff only means the bytes are printable, so a .pdf, .docx or
// .doc extension outranks it and the format's own decoder reports the damage.
func DetectMIMEType(filename string, data []byte) string {
	byExtension, hasExtension := extensionTypes[strings.ToLower(filepath.Ext(filename))]

	if len(data) > 0 {
		detected := domain.BaseMIMEType(mimetype.Detect(data).String())
		if _, ok := domain.DocumentTypeFor(detected); ok {
			if detected == domain.MIMETypeText && hasExtension {
				return byExtension
			}
			return detected
		}
	}

	if hasExtension {
		return byExtension
	}
	return "application/octet-stream"
}
