package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/folio-labs/folio-backend/internal/middleware"
	"github.com/folio-labs/folio-backend/internal/models"
	"github.com/folio-labs/folio-backend/internal/storage"
)

// BoardHandler handles board CRUD. Every operation is filtered by the
// current user; another user's board id behaves like a missing board.
type BoardHandler struct {
	store storage.Store
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(store storage.Store) *BoardHandler {
	return &BoardHandler{store: store}
}

// List returns the caller's boards.
func (h *BoardHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	boards, err := h.store.GetBoardsByUser(user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if boards == nil {
		boards = []*models.Board{}
	}
	return c.JSON(boards)
}

// Create adds a board owned by the caller.
func (h *BoardHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req models.BoardCreate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	board, err := h.store.CreateBoard(&models.Board{
		Title:       req.Title,
		Description: req.Description,
		Theme:       req.Theme,
		UserID:      user.UserID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(board)
}

// Delete removes a board and then its tasks. The two deletes are separate
// store operations; a crash in between orphans the tasks, which is accepted.
func (h *BoardHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	boardID := c.Params("id")

	if err := h.store.DeleteBoard(boardID, user.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(c, "Board not found")
		}
		return respondError(c, err)
	}
	if err := h.store.DeleteTasksByBoard(boardID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}
