package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/folio-labs/folio-backend/internal/apperr"
	"github.com/folio-labs/folio-backend/internal/models"
	"github.com/folio-labs/folio-backend/internal/services"
)

// UserKey is the locals key the current user is stored under.
const UserKey = "currentUser"

// RequireAuth validates the bearer token and loads the current user into
// the request locals. Requests without a valid token get 401.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return unauthorized(c)
		}

		user, err := auth.CurrentUser(token)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user loaded by RequireAuth.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx) error {
	c.Set("WWW-Authenticate", "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": apperr.ErrInvalidToken.Error(),
	})
}
