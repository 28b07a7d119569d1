// Package httpapi provides the REST upload API for cvkit, built on Fiber.
package httpapi

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driving"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// ErrMissingParserService is returned when the parser service is not provided.
var ErrMissingParserService = errors.New("httpapi: parser service is required")

// multipartOverhead is the body allowance on top of the file size limit.
const multipartOverhead = 1 << 20

// Config holds the services behind the API.
type Config struct {
	// Parser parses uploads (required).
	Parser driving.ParserService

	// CV stores parsed CVs. Without it only /parse and /health are served.
	CV driving.CVService

	// MaxFileSize is the upload limit in bytes (default: domain.DefaultMaxFileSize).
	MaxFileSize int64
}

// Server serves the CV upload API.
type Server struct {
	app     *fiber.App
	parser  driving.ParserService
	cvs     driving.CVService
	maxSize int64
}

// NewServer creates a server and registers its routes.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Parser == nil {
		return nil, ErrMissingParserService
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = domain.DefaultMaxFileSize
	}

	s := &Server{
		parser:  cfg.Parser,
		cvs:     cfg.CV,
		maxSize: cfg.MaxFileSize,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "cvkit",
		BodyLimit:             int(cfg.MaxFileSize) + multipartOverhead,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.register()

	return s, nil
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		if err := s.app.Shutdown(); err != nil {
			logger.Warn("http shutdown: %v", err)
		}
	}()

	logger.Info("HTTP server listening on %s", addr)
	return s.app.Listen(addr)
}

// register wires all routes onto the app.
func (s *Server) register() {
	v1 := s.app.Group("/api/v1")

	v1.Get("/health", s.health)
	v1.Post("/parse", s.parse)

	if s.cvs == nil {
		return
	}
	v1.Post("/cvs", s.ingest)
	v1.Get("/cvs", s.list)
	v1.Get("/cvs/:id", s.get)
	v1.Delete("/cvs/:id", s.remove)
	v1.Post("/cvs/:id/analysis", s.analyse)
}
