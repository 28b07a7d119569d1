package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvkit/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP upload API",
	Long: `Start a REST API for uploading and parsing CVs.

Endpoints:
  POST   /api/v1/parse              Parse a multipart "file" without storing it
  POST   /api/v1/cvs                Parse and store a multipart "file"
  GET    /api/v1/cvs                List stored CVs (?limit=&offset=)
  GET    /api/v1/cvs/:id            Get a stored CV
  DELETE /api/v1/cvs/:id            Delete a stored CV
  POST   /api/v1/cvs/:id/analysis   Request an LLM review
  GET    /api/v1/health             Liveness and limits`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "TCP port (default: server.port setting)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	svc, err := requireServices(cmd)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = svc.ServerPort
	}

	server, err := httpapi.NewServer(httpapi.Config{
		Parser:      svc.Parser,
		CV:          svc.CV,
		MaxFileSize: svc.MaxFileSize,
	})
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on http://localhost%s\n", addr)
	return server.Listen(cmd.Context(), addr)
}
