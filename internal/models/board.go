package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board is owned by exactly one user. All reads and writes are filtered by
// the owner's id; there is no referential constraint in the store.
type Board struct {
	gorm.Model `json:"-"`

	BoardID     string `json:"id" gorm:"uniqueIndex"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Theme       string `json:"theme" gorm:"default:plain"`
	UserID      string `json:"userId" gorm:"index;not null"`
	CreatedMs   int64  `json:"createdAt"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.BoardID == "" {
		b.BoardID = uuid.NewString()
	}
	if b.Theme == "" {
		b.Theme = "plain"
	}
	if b.CreatedMs == 0 {
		b.CreatedMs = time.Now().UnixMilli()
	}
	return nil
}

// BoardCreate is the request body for creating a board.
type BoardCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
}
