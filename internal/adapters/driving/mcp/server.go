package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cvkit/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownTimeout bounds how long RunHTTP waits for in-flight sessions.
const shutdownTimeout = 5 * time.Second

// Server exposes CV parsing to MCP clients. Stored CVs are published as
// resources only when a CV service is configured.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, fmt.Errorf("validating ports: %w", ErrMissingParserService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports}
	s.server = mcp.NewServer(
		&mcp.Implementation{Name: "cvkit", Version: Version},
		&mcp.ServerOptions{Instructions: s.instructions()},
	)

	s.registerTools()
	if ports.CV != nil {
		s.registerResources()
	}
	logger.Debug("mcp: server ready (resources=%t)", ports.CV != nil)

	return s, nil
}

// instructions tells clients which formats parse_cv accepts and whether
// stored CVs can be browsed.
func (s *Server) instructions() string {
	var b strings.Builder
	b.WriteString("cvkit extracts plain text, name, email and phone from CVs. ")
	fmt.Fprintf(&b, "parse_cv takes base64 content with one of these MIME types: %s. ",
		strings.Join(s.ports.Parser.SupportedMIMETypes(), ", "))
	b.WriteString("extract_basic_info takes text that has already been extracted.")
	if s.ports.CV != nil {
		fmt.Fprintf(&b, " Stored CVs are listed at %scvs and read at %scvs/{cvId}.", uriScheme, uriScheme)
	}
	return b.String()
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves streamable HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Info("mcp: listening on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
