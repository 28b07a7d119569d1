// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration at ~/.cvkit/config.toml
package file
