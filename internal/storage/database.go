package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-labs/folio-backend/internal/models"
)

// DatabaseStore implements Store on GORM/Postgres.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given database handle.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// User operations

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStore) UpdateUserPassword(email, passwordHash string) error {
	res := s.db.Model(&models.User{}).Where("email = ?", email).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Pending registration operations

func (s *DatabaseStore) UpsertPendingRegistration(reg *models.PendingRegistration) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "code", "expires_at", "updated_at"}),
	}).Create(reg).Error
}

func (s *DatabaseStore) GetPendingRegistration(email string) (*models.PendingRegistration, error) {
	var reg models.PendingRegistration
	if err := s.db.Where("email = ?", email).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (s *DatabaseStore) DeletePendingRegistration(email string) error {
	// Hard delete so the unique email index frees up for the next request.
	return s.db.Unscoped().Where("email = ?", email).
		Delete(&models.PendingRegistration{}).Error
}

// OTP operations

func (s *DatabaseStore) UpsertOTP(otp *models.OTP) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "purpose", "expires_at", "updated_at"}),
	}).Create(otp).Error
}

func (s *DatabaseStore) GetOTP(email string) (*models.OTP, error) {
	var otp models.OTP
	if err := s.db.Where("email = ?", email).First(&otp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (s *DatabaseStore) DeleteOTP(email string) error {
	return s.db.Unscoped().Where("email = ?", email).Delete(&models.OTP{}).Error
}

// Board operations

func (s *DatabaseStore) CreateBoard(board *models.Board) (*models.Board, error) {
	if err := s.db.Create(board).Error; err != nil {
		return nil, err
	}
	return board, nil
}

func (s *DatabaseStore) GetBoardsByUser(userID string) ([]*models.Board, error) {
	var boards []*models.Board
	err := s.db.Where("user_id = ?", userID).Limit(MaxBoards).Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *DatabaseStore) GetBoard(boardID, userID string) (*models.Board, error) {
	var board models.Board
	err := s.db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (s *DatabaseStore) DeleteBoard(boardID, userID string) error {
	res := s.db.Unscoped().Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&models.Board{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Task operations

func (s *DatabaseStore) CreateTask(task *models.Task) (*models.Task, error) {
	if err := s.db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *DatabaseStore) GetTasksByBoard(boardID string) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.db.Where("board_id = ?", boardID).Limit(MaxTasks).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *DatabaseStore) GetTask(taskID string) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("task_id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *DatabaseStore) UpdateTask(task *models.Task) error {
	return s.db.Save(task).Error
}

func (s *DatabaseStore) DeleteTask(taskID string) error {
	res := s.db.Unscoped().Where("task_id = ?", taskID).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) DeleteTasksByBoard(boardID string) error {
	return s.db.Unscoped().Where("board_id = ?", boardID).Delete(&models.Task{}).Error
}
