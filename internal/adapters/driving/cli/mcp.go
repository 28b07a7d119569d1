package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvkit/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

Tools:
  parse_cv            Parse a base64-encoded CV into text and basic info
  extract_basic_info  Find name, email and phone in CV text

Stored CVs are exposed as cvkit://cvs resources.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve over HTTP instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  cvkit mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  cvkit mcp serve --port 8081

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "cvkit": {
        "command": "/path/to/cvkit",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Parser: svc.Parser,
		CV:     svc.CV,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
