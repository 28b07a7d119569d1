// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The parsing pipeline is validate, extract, normalise, then basic-info
// extraction. Extractors are selected through the ExtractorRegistry so
// this package never imports a format decoder directly.
package services
