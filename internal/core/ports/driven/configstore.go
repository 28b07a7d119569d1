package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("storage.backend") matching TOML tables.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Keys returns all configured keys in sorted order.
	Keys() []string

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
