package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"servio/internal/domain"
	applog "servio/internal/log"
)

// fail maps domain errors onto HTTP status codes. Unexpected errors get a
// generic body so internals never leak to the client.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		applog.Security(c, action, map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrClosedRequest):
		applog.Security(c, action, map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}
}

func badRequest(c *fiber.Ctx, action, msg string, fields map[string]any) error {
	applog.Security(c, action, fields)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
