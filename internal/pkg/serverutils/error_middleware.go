package serverutils

import (
	"ragchat-be/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy onto HTTP statuses:
// ValidationError is the caller's fault (400), everything else is a 500 with
// only the failure category exposed.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if apperrors.IsValidation(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, apperrors.UserFacingMessage(err)))
	}
}
