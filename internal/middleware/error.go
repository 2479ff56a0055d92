package middleware

import (
	"errors"

	"quizroom/internal/domain"
	"quizroom/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps errors bubbling out of handlers to HTTP responses. Domain
// errors get stable statuses per code; anything else becomes a 500 without
// leaking internals.
func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := statusForCode(domainErr.Code)
			if status >= fiber.StatusInternalServerError {
				logger.Get().Error("Request failed",
					zap.String("path", c.Path()),
					zap.String("code", string(domainErr.Code)),
					zap.Error(err))
			}
			return c.Status(status).JSON(domainErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"code":    "HTTP_ERROR",
				"message": fiberErr.Message,
			})
		}

		logger.Get().Error("Unhandled error",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    string(domain.ErrInternal),
			"message": "An unexpected error occurred",
		})
	}
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrInvalidInput:
		return fiber.StatusBadRequest
	case domain.ErrUnauthorized:
		return fiber.StatusUnauthorized
	case domain.ErrForbidden, domain.ErrQuizNotAvailable:
		return fiber.StatusForbidden
	case domain.ErrNotFound, domain.ErrQuizNotFound, domain.ErrSessionNotFound:
		return fiber.StatusNotFound
	case domain.ErrSessionState:
		return fiber.StatusConflict
	case domain.ErrQuizLoadFailure, domain.ErrSubmissionFailure:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
