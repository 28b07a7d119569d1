package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

//nolint:gosec // G101: config key name, not a credential.
const apiKeySetting = "analysis.api_key"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change cvkit settings stored in ~/.cvkit/config.toml.

Every setting can be overridden with an environment variable named CVKIT_
followed by the key in upper case with dots as underscores, for example
CVKIT_STORAGE_BACKEND. DATABASE_URL, REDIS_ADDR and ANTHROPIC_API_KEY are
also honoured. A .env file in the working directory is loaded on start.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting. Run 'cvkit config keys' for the list of keys.

When setting analysis.api_key without a value, the key is read from the
terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())

	cmd.Println(st.Title.Render("[Parser]"))
	cmd.Printf("  Max file size: %d bytes\n", settings.Parser.MaxFileSize)
	cmd.Println()

	cmd.Println(st.Title.Render("[Storage]"))
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	}
	if settings.Storage.DatabaseURL != "" {
		cmd.Printf("  Database URL: %s\n", maskAPIKey(settings.Storage.DatabaseURL))
	}
	cmd.Println()

	cmd.Println(st.Title.Render("[Cache]"))
	if settings.Cache.RedisAddr != "" {
		cmd.Printf("  Redis: %s\n", settings.Cache.RedisAddr)
	} else {
		cmd.Printf("  Redis: (not set, using in-memory cache)\n")
	}
	cmd.Printf("  TTL: %s\n", settings.Cache.TTL)
	cmd.Println()

	cmd.Println(st.Title.Render("[Analysis]"))
	provider := settings.Analysis.Provider.String()
	if provider == "" {
		provider = "(none)"
	}
	cmd.Printf("  Provider: %s\n", provider)
	cmd.Printf("  Model: %s\n", settings.Analysis.Model)
	if settings.Analysis.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Analysis.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Auto: %t\n", settings.Analysis.Auto)
	status := st.Success.Render("configured")
	if !settings.Analysis.IsConfigured() {
		status = st.Muted.Render("not configured")
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println(st.Title.Render("[Server]"))
	cmd.Printf("  Port: %d\n", settings.Server.Port)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == apiKeySetting:
		cmd.Print("Enter API key: ")
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
		if value == "" {
			return errors.New("API key is required")
		}
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == apiKeySetting {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

// readPassword reads a line without echo when in is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	input, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
