package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/folio-labs/folio-backend/internal/models"
	"github.com/folio-labs/folio-backend/internal/services"
)

// AuthHandler exposes the auth flows over HTTP.
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Token handles form-encoded password login (OAuth2 password form shape:
// the username field carries the email).
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return badRequest(c, "Username and password are required")
	}

	token, err := h.auth.Login(email, password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(token)
}

// RegisterRequest starts an OTP-gated registration.
func (h *AuthHandler) RegisterRequest(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return badRequest(c, "Email, name, and password are required")
	}

	if err := h.auth.RegisterRequest(req.Email, req.Name, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Verification code sent"})
}

// RegisterVerify confirms a pending registration and signs the user in.
func (h *AuthHandler) RegisterVerify(c *fiber.Ctx) error {
	var req models.RegisterVerify
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.OTP == "" {
		return badRequest(c, "Email and otp are required")
	}

	token, err := h.auth.RegisterVerify(req.Email, req.OTP)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(token)
}

// RequestOTP issues a passwordless login code.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req models.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	if err := h.auth.RequestOTP(req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OTP sent"})
}

// VerifyOTP consumes a login code and signs the user in, creating the
// account first when the email is new.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req models.OTPVerify
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.OTP == "" {
		return badRequest(c, "Email and otp are required")
	}

	token, err := h.auth.VerifyOTP(req.Email, req.OTP, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(token)
}

// RequestReset issues a password reset code.
func (h *AuthHandler) RequestReset(c *fiber.Ctx) error {
	var req models.ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	if err := h.auth.RequestReset(req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reset code sent"})
}

// ResetPassword consumes a reset code and sets the new password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetVerify
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return badRequest(c, "Email, otp, and newPassword are required")
	}

	if err := h.auth.ResetVerify(req.Email, req.OTP, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated. You can now sign in with your new password."})
}
