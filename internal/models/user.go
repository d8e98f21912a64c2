package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. PasswordHash is empty for accounts created
// through the passwordless OTP flow; password login must reject those.
type User struct {
	gorm.Model `json:"-"`

	UserID       string `json:"id" gorm:"uniqueIndex"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

// BeforeCreate assigns the public ID.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

// HasPassword reports whether password login is possible for this account.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// PendingRegistration is an unconfirmed signup awaiting email verification.
// Keyed by email: a second register request for the same address overwrites
// the record, invalidating the earlier code. Expiry is checked at
// verification time, never swept.
type PendingRegistration struct {
	gorm.Model `json:"-"`

	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Code         string    `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null"`
}
