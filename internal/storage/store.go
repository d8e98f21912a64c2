package storage

import (
	"errors"

	"github.com/folio-labs/folio-backend/internal/models"
)

// Sentinel errors shared by every Store implementation. Services translate
// these into the API error taxonomy.
var (
	// ErrNotFound means the filter matched no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail means an insert hit the unique email index.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Result caps; fixed, no pagination.
const (
	MaxBoards = 100
	MaxTasks  = 1000
)

// Store defines the persistence operations. Each call is a single atomic
// document operation; there are no multi-record transactions, so callers
// sequencing two calls accept the window between them.
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUserPassword(email, passwordHash string) error

	// Pending registration operations (keyed by email, upsert semantics)
	UpsertPendingRegistration(reg *models.PendingRegistration) error
	GetPendingRegistration(email string) (*models.PendingRegistration, error)
	DeletePendingRegistration(email string) error

	// OTP operations (keyed by email, upsert semantics)
	UpsertOTP(otp *models.OTP) error
	GetOTP(email string) (*models.OTP, error)
	DeleteOTP(email string) error

	// Board operations (always owner-scoped)
	CreateBoard(board *models.Board) (*models.Board, error)
	GetBoardsByUser(userID string) ([]*models.Board, error)
	GetBoard(boardID, userID string) (*models.Board, error)
	DeleteBoard(boardID, userID string) error

	// Task operations
	CreateTask(task *models.Task) (*models.Task, error)
	GetTasksByBoard(boardID string) ([]*models.Task, error)
	GetTask(taskID string) (*models.Task, error)
	UpdateTask(task *models.Task) error
	DeleteTask(taskID string) error
	DeleteTasksByBoard(boardID string) error
}
