package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/folio-labs/folio-backend/internal/apperr"
	"github.com/folio-labs/folio-backend/internal/models"
	"github.com/folio-labs/folio-backend/internal/storage"
)

// OTPService issues and consumes one-time codes. One active code per email:
// Issue upserts by email, so the newest code wins regardless of purpose.
type OTPService struct {
	store      storage.Store
	ttlMinutes int
}

func NewOTPService(store storage.Store, ttlMinutes int) *OTPService {
	return &OTPService{store: store, ttlMinutes: ttlMinutes}
}

// Generate returns a random 6-digit code, leading zeros allowed.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue generates a code and upserts the OTP record for email, replacing
// any prior unconsumed code. Returns the code for delivery.
func (s *OTPService) Issue(email, purpose string) (string, error) {
	code, err := Generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := &models.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(time.Duration(s.ttlMinutes) * time.Minute),
	}
	if err := s.store.UpsertOTP(otp); err != nil {
		return "", fmt.Errorf("failed to save OTP: %w", err)
	}
	return code, nil
}

// Consume validates a submitted code and deletes it on success. The checks
// run in a fixed order: record presence, then purpose, then code, then
// expiry. Purpose is checked strictly before the code so a reset code
// submitted to the login path fails with ErrWrongPurpose even when the
// digits match.
func (s *OTPService) Consume(email, submitted, purpose string) error {
	record, err := s.store.GetOTP(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.ErrOTPNotFound
		}
		return err
	}
	if record.Purpose != purpose {
		return apperr.ErrWrongPurpose
	}
	if record.Code != submitted {
		return apperr.ErrInvalidCode
	}
	if record.Expired(time.Now()) {
		return apperr.ErrCodeExpired
	}
	return s.store.DeleteOTP(email)
}
