package httpapi

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// statusFor maps a domain error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrOversizeFile):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrDecodeFailure):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAnalyserUnavailable), errors.Is(err, domain.ErrNotImplemented):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders err as a JSON error response.
// Unmapped errors are logged and reported without detail.
func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Method(), c.Path(), err)
		message = "internal server error"
	}
	return c.Status(status).JSON(ErrorResponse{Message: message})
}

// errorHandler renders errors raised by Fiber itself, such as unknown routes
// and body limit violations.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(ErrorResponse{Message: fe.Message})
	}
	return writeError(c, err)
}
