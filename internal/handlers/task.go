package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/folio-labs/folio-backend/internal/middleware"
	"github.com/folio-labs/folio-backend/internal/models"
	"github.com/folio-labs/folio-backend/internal/storage"
)

// TaskHandler handles task CRUD. Ownership is transitive through the
// board, so every operation resolves the board under the caller first.
type TaskHandler struct {
	store storage.Store
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(store storage.Store) *TaskHandler {
	return &TaskHandler{store: store}
}

// ListByBoard returns the tasks of one of the caller's boards.
func (h *TaskHandler) ListByBoard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	boardID := c.Params("id")

	if _, err := h.store.GetBoard(boardID, user.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(c, "Board not found")
		}
		return respondError(c, err)
	}

	tasks, err := h.store.GetTasksByBoard(boardID)
	if err != nil {
		return respondError(c, err)
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return c.JSON(tasks)
}

// Create adds a task to one of the caller's boards.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.TaskCreate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.BoardID == "" {
		return badRequest(c, "Title and boardId are required")
	}

	if _, err := h.store.GetBoard(req.BoardID, user.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(c, "Board not found")
		}
		return respondError(c, err)
	}

	task, err := h.store.CreateTask(&models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Rotation:    req.Rotation,
		Tags:        req.Tags,
		BoardID:     req.BoardID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// Update replaces a task's mutable fields. The task's board must belong to
// the caller; anything else is a 404.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	taskID := c.Params("id")

	var req models.TaskUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	task, err := h.ownedTask(taskID, user.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(c, "Task not found")
		}
		return respondError(c, err)
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Status = req.Status
	task.Priority = req.Priority
	task.DueDate = req.DueDate
	task.Rotation = req.Rotation
	task.Tags = req.Tags

	if err := h.store.UpdateTask(task); err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// Delete removes one of the caller's tasks.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	taskID := c.Params("id")

	if _, err := h.ownedTask(taskID, user.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(c, "Task not found")
		}
		return respondError(c, err)
	}

	if err := h.store.DeleteTask(taskID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// ownedTask resolves a task and verifies its board belongs to userID.
func (h *TaskHandler) ownedTask(taskID, userID string) (*models.Task, error) {
	task, err := h.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := h.store.GetBoard(task.BoardID, userID); err != nil {
		return nil, err
	}
	return task, nil
}
