package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/folio-labs/folio-backend/internal/models"
)

// MemoryStore holds all data in memory. Used for tests and local runs
// without a database; not for production.
type MemoryStore struct {
	users   map[string]*models.User                // by email
	pending map[string]*models.PendingRegistration // by email
	otps    map[string]*models.OTP                 // by email
	boards  map[string]*models.Board               // by board id
	tasks   map[string]*models.Task                // by task id

	userMu    sync.RWMutex
	pendingMu sync.RWMutex
	otpMu     sync.RWMutex
	boardMu   sync.RWMutex
	taskMu    sync.RWMutex

	userCounter uint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]*models.User),
		pending: make(map[string]*models.PendingRegistration),
		otps:    make(map[string]*models.OTP),
		boards:  make(map[string]*models.Board),
		tasks:   make(map[string]*models.Task),
	}
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.users[user.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	m.userCounter++
	user.ID = m.userCounter
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	m.users[user.Email] = user
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[email]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) UpdateUserPassword(email, passwordHash string) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	user, exists := m.users[email]
	if !exists {
		return ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

// Pending registration operations

func (m *MemoryStore) UpsertPendingRegistration(reg *models.PendingRegistration) error {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()

	m.pending[reg.Email] = reg
	return nil
}

func (m *MemoryStore) GetPendingRegistration(email string) (*models.PendingRegistration, error) {
	m.pendingMu.RLock()
	defer m.pendingMu.RUnlock()

	reg, exists := m.pending[email]
	if !exists {
		return nil, ErrNotFound
	}
	return reg, nil
}

func (m *MemoryStore) DeletePendingRegistration(email string) error {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()

	delete(m.pending, email)
	return nil
}

// OTP operations

func (m *MemoryStore) UpsertOTP(otp *models.OTP) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	m.otps[otp.Email] = otp
	return nil
}

func (m *MemoryStore) GetOTP(email string) (*models.OTP, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	otp, exists := m.otps[email]
	if !exists {
		return nil, ErrNotFound
	}
	return otp, nil
}

func (m *MemoryStore) DeleteOTP(email string) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	delete(m.otps, email)
	return nil
}

// Board operations

func (m *MemoryStore) CreateBoard(board *models.Board) (*models.Board, error) {
	m.boardMu.Lock()
	defer m.boardMu.Unlock()

	// Mirror the database hooks.
	if board.BoardID == "" {
		board.BoardID = uuid.NewString()
	}
	if board.Theme == "" {
		board.Theme = "plain"
	}
	if board.CreatedMs == 0 {
		board.CreatedMs = time.Now().UnixMilli()
	}

	m.boards[board.BoardID] = board
	return board, nil
}

func (m *MemoryStore) GetBoardsByUser(userID string) ([]*models.Board, error) {
	m.boardMu.RLock()
	defer m.boardMu.RUnlock()

	var boards []*models.Board
	for _, board := range m.boards {
		if board.UserID == userID {
			boards = append(boards, board)
			if len(boards) == MaxBoards {
				break
			}
		}
	}
	return boards, nil
}

func (m *MemoryStore) GetBoard(boardID, userID string) (*models.Board, error) {
	m.boardMu.RLock()
	defer m.boardMu.RUnlock()

	board, exists := m.boards[boardID]
	if !exists || board.UserID != userID {
		return nil, ErrNotFound
	}
	return board, nil
}

func (m *MemoryStore) DeleteBoard(boardID, userID string) error {
	m.boardMu.Lock()
	defer m.boardMu.Unlock()

	board, exists := m.boards[boardID]
	if !exists || board.UserID != userID {
		return ErrNotFound
	}
	delete(m.boards, boardID)
	return nil
}

// Task operations

func (m *MemoryStore) CreateTask(task *models.Task) (*models.Task, error) {
	m.taskMu.Lock()
	defer m.taskMu.Unlock()

	if task.TaskID == "" {
		task.TaskID = uuid.NewString()
	}
	if task.CreatedMs == 0 {
		task.CreatedMs = time.Now().UnixMilli()
	}

	m.tasks[task.TaskID] = task
	return task, nil
}

func (m *MemoryStore) GetTasksByBoard(boardID string) ([]*models.Task, error) {
	m.taskMu.RLock()
	defer m.taskMu.RUnlock()

	var tasks []*models.Task
	for _, task := range m.tasks {
		if task.BoardID == boardID {
			tasks = append(tasks, task)
			if len(tasks) == MaxTasks {
				break
			}
		}
	}
	return tasks, nil
}

func (m *MemoryStore) GetTask(taskID string) (*models.Task, error) {
	m.taskMu.RLock()
	defer m.taskMu.RUnlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return nil, ErrNotFound
	}
	return task, nil
}

func (m *MemoryStore) UpdateTask(task *models.Task) error {
	m.taskMu.Lock()
	defer m.taskMu.Unlock()

	if _, exists := m.tasks[task.TaskID]; !exists {
		return ErrNotFound
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *MemoryStore) DeleteTask(taskID string) error {
	m.taskMu.Lock()
	defer m.taskMu.Unlock()

	if _, exists := m.tasks[taskID]; !exists {
		return ErrNotFound
	}
	delete(m.tasks, taskID)
	return nil
}

func (m *MemoryStore) DeleteTasksByBoard(boardID string) error {
	m.taskMu.Lock()
	defer m.taskMu.Unlock()

	for id, task := range m.tasks {
		if task.BoardID == boardID {
			delete(m.tasks, id)
		}
	}
	return nil
}
