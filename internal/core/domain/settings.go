package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend selects where parsed CVs are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite stores CVs in a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendPostgres stores CVs in a hosted Postgres database.
	StorageBackendPostgres StorageBackend = "postgres"

	// StorageBackendMemory keeps CVs in process memory only.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendPostgres, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (local file)"
	case StorageBackendPostgres:
		return "Postgres (hosted)"
	case StorageBackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an LLM provider used for CV analysis.
type AIProvider string

// Available AI providers.
const (
	// AIProviderNone disables CV analysis.
	AIProviderNone AIProvider = ""

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	return p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// ParserSettings configures upload validation.
type ParserSettings struct {
	// MaxFileSize is the largest accepted upload in bytes.
	MaxFileSize int64
}

// StorageSettings configures CV persistence.
type StorageSettings struct {
	// Backend selects the store implementation.
	Backend StorageBackend

	// DataDir is the SQLite data directory (default: ~/.cvkit/data).
	DataDir string

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string
}

// CacheSettings configures the parse cache.
type CacheSettings struct {
	// RedisAddr is host:port of a Redis server. Empty uses an in-memory cache.
	RedisAddr string

	// RedisPassword authenticates against Redis.
	RedisPassword string

	// TTL is how long parse results stay cached.
	TTL time.Duration
}

// AnalysisSettings configures LLM review of CVs.
type AnalysisSettings struct {
	// Provider is the LLM provider. Empty disables analysis.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// APIKey is the provider API key.
	APIKey string

	// Auto requests analysis on every ingest.
	Auto bool
}

// IsConfigured returns true if analysis can be performed.
func (a AnalysisSettings) IsConfigured() bool {
	return a.Provider.IsValid() && a.APIKey != ""
}

// ServerSettings configures the HTTP upload server.
type ServerSettings struct {
	// Port is the TCP port to listen on.
	Port int
}

// Settings is the complete application configuration.
type Settings struct {
	Parser   ParserSettings
	Storage  StorageSettings
	Cache    CacheSettings
	Analysis AnalysisSettings
	Server   ServerSettings
}

// DefaultSettings returns settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Parser: ParserSettings{
			MaxFileSize: DefaultMaxFileSize,
		},
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
		Cache: CacheSettings{
			TTL: 10 * time.Minute,
		},
		Analysis: AnalysisSettings{
			Model: "claude-3-5-sonnet-latest",
		},
		Server: ServerSettings{
			Port: 8080,
		},
	}
}
