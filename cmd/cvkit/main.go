// Command cvkit parses CVs into normalised text and basic candidate details.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/cvkit/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cvkit/internal/adapters/driving/cli"
	"github.com/custodia-labs/cvkit/internal/core/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		os.Exit(1)
	}
	settingsService := services.NewSettingsService(configStore)

	cli.SetVersion(version)
	cli.SetSettingsService(settingsService)
	cli.SetServiceFactory(func(ctx context.Context) (*cli.Services, func(), error) {
		return buildServices(ctx, settingsService)
	})

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
