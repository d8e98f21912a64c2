package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/folio-labs/folio-backend/internal/apperr"
	"github.com/folio-labs/folio-backend/internal/models"
	"github.com/folio-labs/folio-backend/internal/storage"
)

// Notifier is the outbound side of the auth flows. The dispatcher in
// internal/jobs satisfies it; requests never wait on delivery.
type Notifier interface {
	Notify(to, subject, body string)
}

// AuthService implements the five auth flows: password login, OTP-gated
// registration, passwordless OTP login, and password reset request/verify.
type AuthService struct {
	store    storage.Store
	hasher   *Hasher
	tokens   *TokenService
	otps     *OTPService
	notifier Notifier

	otpTTLMinutes int
}

func NewAuthService(store storage.Store, hasher *Hasher, tokens *TokenService, otps *OTPService, notifier Notifier, otpTTLMinutes int) *AuthService {
	return &AuthService{
		store:         store,
		hasher:        hasher,
		tokens:        tokens,
		otps:          otps,
		notifier:      notifier,
		otpTTLMinutes: otpTTLMinutes,
	}
}

// Login authenticates with email and password. A missing account, an
// OTP-only account without a password, and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*models.TokenResponse, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}
	return s.issueToken(user)
}

// RegisterRequest starts an OTP-gated registration. The pending record is
// upserted by email, so a repeat request replaces the earlier code. The
// code travels only by email, never in the response.
func (s *AuthService) RegisterRequest(email, name, password string) error {
	_, err := s.store.GetUserByEmail(email)
	if err == nil {
		return apperr.ErrAlreadyRegistered
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	code, err := Generate()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	reg := &models.PendingRegistration{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Code:         code,
		ExpiresAt:    time.Now().Add(time.Duration(s.otpTTLMinutes) * time.Minute),
	}
	if err := s.store.UpsertPendingRegistration(reg); err != nil {
		return fmt.Errorf("failed to save pending registration: %w", err)
	}

	s.notifier.Notify(email, "Verify your Folio account",
		fmt.Sprintf("Hello,\n\nYour verification code for Folio is: %s\n\nIt expires in %d minutes.\n\nImperfectly yours,\nFolio.", code, s.otpTTLMinutes))
	return nil
}

// RegisterVerify promotes a pending registration to a real user. The code
// is compared before expiry is checked. Creating the user and deleting the
// pending record are two store operations; a crash between them leaves a
// pending record behind, which the unique email index makes harmless.
func (s *AuthService) RegisterVerify(email, code string) (*models.TokenResponse, error) {
	reg, err := s.store.GetPendingRegistration(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrNoPendingRegistration
		}
		return nil, err
	}
	if reg.Code != code {
		return nil, apperr.ErrInvalidCode
	}
	if time.Now().After(reg.ExpiresAt) {
		return nil, apperr.ErrCodeExpired
	}

	user, err := s.store.CreateUser(&models.User{
		Email:        reg.Email,
		Name:         reg.Name,
		PasswordHash: reg.PasswordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, apperr.ErrAlreadyRegistered
		}
		return nil, err
	}
	if err := s.store.DeletePendingRegistration(email); err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// RequestOTP issues a login code for any email, registered or not. The
// response is identical either way, so the endpoint does not reveal whether
// an account exists.
func (s *AuthService) RequestOTP(email string) error {
	code, err := s.otps.Issue(email, models.OTPPurposeLogin)
	if err != nil {
		return err
	}
	s.notifier.Notify(email, "Your Folio Login Code",
		fmt.Sprintf("Hello,\n\nYour access code for Folio is: %s\n\nIt expires in %d minutes.\n\nImperfectly yours,\nFolio.", code, s.otpTTLMinutes))
	return nil
}

// VerifyOTP consumes a login code. For an email without an account this
// doubles as signup: name is required and the user is created without a
// password.
func (s *AuthService) VerifyOTP(email, code, name string) (*models.TokenResponse, error) {
	if err := s.otps.Consume(email, code, models.OTPPurposeLogin); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if name == "" {
			return nil, apperr.ErrNameRequired
		}
		user, err = s.store.CreateUser(&models.User{Email: email, Name: name})
		if err != nil {
			return nil, err
		}
	}
	return s.issueToken(user)
}

// RequestReset issues a reset code. Unlike RequestOTP, this deliberately
// reveals whether the email has an account.
func (s *AuthService) RequestReset(email string) error {
	if _, err := s.store.GetUserByEmail(email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.ErrNoAccount
		}
		return err
	}

	code, err := s.otps.Issue(email, models.OTPPurposeReset)
	if err != nil {
		return err
	}
	s.notifier.Notify(email, "Reset your Folio password",
		fmt.Sprintf("Hello,\n\nYour password reset code is: %s\n\nIt expires in %d minutes.\n\nIf you didn't request this, you can ignore this email.\n\nImperfectly yours,\nFolio.", code, s.otpTTLMinutes))
	return nil
}

// ResetVerify consumes a reset code and replaces the account password.
func (s *AuthService) ResetVerify(email, code, newPassword string) error {
	if err := s.otps.Consume(email, code, models.OTPPurposeReset); err != nil {
		if errors.Is(err, apperr.ErrOTPNotFound) {
			return apperr.ErrNoPendingReset
		}
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.store.UpdateUserPassword(email, hash)
}

// CurrentUser resolves a bearer token to the account it names.
func (s *AuthService) CurrentUser(token string) (*models.User, error) {
	email, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (*models.TokenResponse, error) {
	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
