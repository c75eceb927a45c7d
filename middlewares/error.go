package middlewares

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"taxmate-backend/extraction"
	"taxmate-backend/hometax"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Typed boundary failures: exactly one user-facing message each,
	// technical detail was already logged at the failure site.
	if errors.Is(err, extraction.ErrExtraction) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": extraction.ErrExtraction.Error()})
	}
	if errors.Is(err, hometax.ErrExport) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": hometax.ErrExport.Error()})
	}

	// 2) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 3) Validation errors (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 4) Unknown errors (500)
	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
