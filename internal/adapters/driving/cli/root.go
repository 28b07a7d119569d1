// Package cli provides the cobra command tree for cvkit.
package cli

import (
	"context"
	"errors"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvkit/internal/core/ports/driving"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Services holds the driving ports used by commands.
type Services struct {
	Parser driving.ParserService
	CV     driving.CVService

	// MaxFileSize is the effective upload limit. Files above it are never read.
	MaxFileSize int64

	// ServerPort is the default port for serve.
	ServerPort int
}

// ServiceFactory builds the services from the current settings.
// The returned cleanup releases stores and clients.
type ServiceFactory func(ctx context.Context) (*Services, func(), error)

var (
	settingsService driving.SettingsService
	serviceFactory  ServiceFactory

	servicesMu  sync.Mutex
	services    *Services
	cleanupFunc func()

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cvkit",
	Short: "Parse CVs into text and contact details",
	Long: `cvkit extracts normalised text and basic candidate details (name, email,
phone) from PDF, Word and plain-text CVs.

Parsed CVs can be stored, listed and reviewed by an LLM, served over HTTP,
exposed to AI assistants over MCP, or ingested from a watched inbox folder.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetSettingsService sets the settings service used by the config commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetServiceFactory sets the factory used to build services on first use.
func SetServiceFactory(f ServiceFactory) {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	serviceFactory = f
	services = nil
}

// SetServices sets ready-built services, bypassing the factory.
func SetServices(s *Services) {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	services = s
}

// Execute runs the root command. Long-running commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// requireServices returns the services, building them on first use.
func requireServices(cmd *cobra.Command) (*Services, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	if services != nil {
		return services, nil
	}
	if serviceFactory == nil {
		return nil, errors.New("services not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, cleanup, err := serviceFactory(ctx)
	if err != nil {
		return nil, err
	}
	services = s
	cleanupFunc = cleanup
	return services, nil
}

func closeServices() {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	if cleanupFunc != nil {
		cleanupFunc()
		cleanupFunc = nil
	}
}
