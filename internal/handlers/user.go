package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/folio-labs/folio-backend/internal/middleware"
)

// UserHandler serves the authenticated user's own record.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the current user.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}
