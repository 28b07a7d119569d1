package domain

import (
	"mime"
	"strings"
)

// Accepted CV MIME types.
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypeDOC  = "application/msword"
	MIMETypeText = "text/plain"
)

// DefaultMaxFileSize is the upload limit applied when none is configured (10 MiB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// DocumentType is the decoding family of a CV.
// Each type has its own extractor and its own failure policy.
type DocumentType string

// Available document types.
const (
	// DocumentTypePDF is a Portable Document Format file.
	DocumentTypePDF DocumentType = "pdf"

	// DocumentTypeWord covers both OOXML (.docx) and legacy (.doc) Word files.
	DocumentTypeWord DocumentType = "word"

	// DocumentTypeText is plain UTF-8 text.
	DocumentTypeText DocumentType = "text"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypePDF, DocumentTypeWord, DocumentTypeText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// DocumentTypeFor maps a MIME type to its document type.
// MIME parameters and case are ignored.
func DocumentTypeFor(mimeType string) (DocumentType, bool) {
	switch BaseMIMEType(mimeType) {
	case MIMETypePDF:
		return DocumentTypePDF, true
	case MIMETypeDOCX, MIMETypeDOC:
		return DocumentTypeWord, true
	case MIMETypeText:
		return DocumentTypeText, true
	default:
		return "", false
	}
}

// SupportedMIMETypes returns the MIME types accepted for upload.
func SupportedMIMETypes() []string {
	return []string{MIMETypePDF, MIMETypeDOCX, MIMETypeDOC, MIMETypeText}
}

// BaseMIMEType strips parameters from a MIME type and lower-cases it.
// "Text/Plain; charset=utf-8" becomes "text/plain".
func BaseMIMEType(mimeType string) string {
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// SourceDocument is a CV as received from an upload.
// It is immutable once constructed.
type SourceDocument struct {
	// Filename is the original file name, if known.
	Filename string

	// MIMEType is the declared content type.
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Size is the declared size in bytes. Zero means len(Content).
	Size int64
}

// ByteSize returns the declared size, falling back to the content length.
func (d *SourceDocument) ByteSize() int64 {
	if d.Size > 0 {
		return d.Size
	}
	return int64(len(d.Content))
}

// Validation is the outcome of checking a SourceDocument against upload limits.
type Validation struct {
	// Valid is true when the document may be parsed.
	Valid bool

	// Reason is a human-readable explanation when Valid is false.
	Reason string
}
