package serverutils

import (
	"errors"

	"mindmate-be/internal/dto"
	"mindmate-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into
// the standard envelope. Generation failures get a category-specific message
// because they are the one failure the user must be told about.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		// Explicit fiber errors keep their status code
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		// Daily usage limit carries its own payload (429)
		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(dto.LimitExceededResponse{
				Success:   false,
				Code:      fiber.StatusTooManyRequests,
				Message:   limitErr.Error(),
				ErrorType: "LIMIT_EXCEEDED",
				Data: dto.LimitExceededData{
					Limit:      limitErr.Limit,
					Used:       limitErr.Used,
					ResetAfter: limitErr.ResetAfter,
				},
			})
		}

		// Categorized LLM failures (the only upstream errors we surface)
		switch {
		case errors.Is(err, llm.ErrUnavailable):
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(500, "The AI service is not running. Please try again in a moment."))
		case errors.Is(err, llm.ErrModelNotFound):
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(500, "The configured AI model was not found. Please contact support."))
		case errors.Is(err, llm.ErrRateLimited):
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(500, "The AI service is receiving too many requests. Please wait a minute and try again."))
		case errors.Is(err, llm.ErrTimeout):
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(500, "The AI service took too long to respond. Please try again."))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(500, "Something went wrong on our side. Please try again."))
	}
}
