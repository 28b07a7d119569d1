// Package domain defines the core business entities for cvkit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceDocument: An uploaded CV as opaque bytes plus a declared MIME type
//   - DocumentType: The decoding family a MIME type belongs to
//   - BasicInfo: Name, email and phone recovered from CV text
//   - ParsedCV: The result of running a SourceDocument through the parser
//   - CV: A parsed CV persisted by a CVStore
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
