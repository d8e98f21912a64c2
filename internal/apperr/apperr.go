// Package apperr defines the error taxonomy surfaced to API clients.
// Every error here maps to a 4xx status; anything else is a server error.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidCredentials    = errors.New("incorrect email or password")
	ErrAlreadyRegistered     = errors.New("email already registered")
	ErrNoPendingRegistration = errors.New("no registration request found")
	ErrInvalidCode           = errors.New("invalid code")
	ErrCodeExpired           = errors.New("code expired")
	ErrWrongPurpose          = errors.New("this code is for password reset. use the reset password form")
	ErrNameRequired          = errors.New("name required for new account")
	ErrNoAccount             = errors.New("no account found with this email")
	ErrOTPNotFound           = errors.New("no OTP request found")
	ErrNoPendingReset        = errors.New("no reset request found")
	ErrInvalidToken          = errors.New("could not validate credentials")
	ErrNotFound              = errors.New("not found")
)

// Status returns the HTTP status for err, or 500 for anything outside the
// taxonomy (store connectivity failures and the like propagate untouched).
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrNoPendingRegistration),
		errors.Is(err, ErrInvalidCode),
		errors.Is(err, ErrCodeExpired),
		errors.Is(err, ErrWrongPurpose),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrNoAccount),
		errors.Is(err, ErrOTPNotFound),
		errors.Is(err, ErrNoPendingReset):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
