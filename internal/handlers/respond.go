package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/folio-labs/folio-backend/internal/apperr"
)

// respondError maps a service error onto its HTTP status. Errors outside
// the taxonomy are store or infrastructure failures; their details stay in
// the logs, not the response.
func respondError(c *fiber.Ctx, err error) error {
	status := apperr.Status(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}
