// Package sqlite provides the SQLite-backed CVStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Files are named NNN_description.up.sql and applied
// in order; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.cvkit/data/cvkit.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
