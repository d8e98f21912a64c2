package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task belongs to exactly one board; its owner is transitively the board's
// owner, so every task operation starts with a board ownership check.
type Task struct {
	gorm.Model `json:"-"`

	TaskID      string   `json:"id" gorm:"uniqueIndex"`
	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     *int64   `json:"dueDate"` // unix millis, optional
	Rotation    float64  `json:"rotation"`
	Tags        []string `json:"tags" gorm:"serializer:json"`
	BoardID     string   `json:"boardId" gorm:"index;not null"`
	CreatedMs   int64    `json:"createdAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.TaskID == "" {
		t.TaskID = uuid.NewString()
	}
	if t.CreatedMs == 0 {
		t.CreatedMs = time.Now().UnixMilli()
	}
	return nil
}

// TaskCreate is the request body for creating a task on a board.
type TaskCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     *int64   `json:"dueDate"`
	Rotation    float64  `json:"rotation"`
	Tags        []string `json:"tags"`
	BoardID     string   `json:"boardId"`
}

// TaskUpdate is the request body for updating a task. The board a task
// belongs to cannot be changed.
type TaskUpdate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     *int64   `json:"dueDate"`
	Rotation    float64  `json:"rotation"`
	Tags        []string `json:"tags"`
}
