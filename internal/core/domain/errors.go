package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// Parsing Errors.

	// ErrUnsupportedType indicates the declared MIME type is not accepted.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrOversizeFile indicates the document exceeds the upload size limit.
	ErrOversizeFile = errors.New("file too large")

	// ErrDecodeFailure indicates a decoder could not extract text.
	// PDF decoding never returns it; the PDF extractor degrades to a placeholder.
	ErrDecodeFailure = errors.New("document decode failed")

	// ErrAnalyserUnavailable indicates no CV analyser is configured.
	ErrAnalyserUnavailable = errors.New("CV analyser unavailable")
)
