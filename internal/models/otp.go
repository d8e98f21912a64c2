package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP purposes. A code issued for one purpose must never be accepted by the
// other purpose's verification path.
const (
	OTPPurposeLogin = "login"
	OTPPurposeReset = "reset"
)

// OTP is a time-boxed one-time code. One active code per email: issuing a
// new code upserts by email regardless of purpose, so a reset request
// replaces a pending login code. Deleted on successful consumption; stale
// codes stay in place until overwritten.
type OTP struct {
	gorm.Model `json:"-"`

	Email     string    `gorm:"uniqueIndex;not null"`
	Code      string    `gorm:"not null"`
	Purpose   string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

// Expired reports whether the code is past its expiry at the given time.
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
