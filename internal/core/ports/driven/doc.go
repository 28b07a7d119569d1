// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Decodes one family of document formats to raw text
//   - ExtractorRegistry: Selects the extractor for a MIME type
//   - CVStore: Parsed CV persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ParseCache: Caches parse results by content hash. Without it every upload is decoded.
//   - CVAnalyser: LLM review of CV text. Without it analysis requests fail with ErrAnalyserUnavailable.
//   - PromptStore: User overrides for analyser prompts. Without it built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
