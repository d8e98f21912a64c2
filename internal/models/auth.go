package models

// Request bodies for the auth flows. Each flow gets its own type rather than
// one broad struct with optional fields, so a handler can only read what its
// flow actually carries.

// RegisterRequest starts an OTP-gated registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegisterVerify confirms a pending registration with the emailed code.
type RegisterVerify struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// OTPRequest asks for a passwordless login code.
type OTPRequest struct {
	Email string `json:"email"`
}

// OTPVerify submits a login code. Name is only consulted when the email has
// no account yet, in which case it is required.
type OTPVerify struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	Name  string `json:"name"`
}

// ResetRequest asks for a password reset code.
type ResetRequest struct {
	Email string `json:"email"`
}

// ResetVerify submits a reset code together with the replacement password.
type ResetVerify struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// TokenResponse is returned by every flow that ends in a signed-in user.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
