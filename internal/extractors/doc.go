// Package extractors provides implementations of the Extractor interface
// for the CV formats cvkit accepts. Each extractor knows how to decode
// the bytes of a specific family of MIME types into raw text.
//
// Failure policy differs per format: the PDF extractor degrades to a
// placeholder when its decoder fails, while the Word and plain text
// extractors return domain.ErrDecodeFailure.
//
// Extractors are registered with the ExtractorRegistry at startup.
package extractors
