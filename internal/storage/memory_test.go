package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-backend/internal/models"
)

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()

	_, err := store.CreateUser(&models.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	_, err = store.CreateUser(&models.User{Email: "a@x.com", Name: "B"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryStore_UpsertOTPByEmail(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()

	require.NoError(t, store.UpsertOTP(&models.OTP{Email: "a@x.com", Code: "111111", Purpose: models.OTPPurposeLogin}))
	require.NoError(t, store.UpsertOTP(&models.OTP{Email: "a@x.com", Code: "222222", Purpose: models.OTPPurposeReset}))

	otp, err := store.GetOTP("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", otp.Code)
	assert.Equal(t, models.OTPPurposeReset, otp.Purpose)

	require.NoError(t, store.DeleteOTP("a@x.com"))
	_, err = store.GetOTP("a@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_BoardOwnership(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()

	alice, err := store.CreateUser(&models.User{Email: "alice@x.com", Name: "Alice"})
	require.NoError(t, err)
	bob, err := store.CreateUser(&models.User{Email: "bob@x.com", Name: "Bob"})
	require.NoError(t, err)

	// Identical titles owned by different users stay independent.
	aliceBoard, err := store.CreateBoard(&models.Board{Title: "Groceries", UserID: alice.UserID})
	require.NoError(t, err)
	bobBoard, err := store.CreateBoard(&models.Board{Title: "Groceries", UserID: bob.UserID})
	require.NoError(t, err)
	assert.NotEqual(t, aliceBoard.BoardID, bobBoard.BoardID)

	// Cross-user access behaves like a missing board.
	_, err = store.GetBoard(aliceBoard.BoardID, bob.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteBoard(aliceBoard.BoardID, bob.UserID), ErrNotFound)

	// Each list sees only its owner's board.
	aliceBoards, err := store.GetBoardsByUser(alice.UserID)
	require.NoError(t, err)
	require.Len(t, aliceBoards, 1)
	assert.Equal(t, aliceBoard.BoardID, aliceBoards[0].BoardID)

	// Owners can delete their own.
	require.NoError(t, store.DeleteBoard(aliceBoard.BoardID, alice.UserID))
	_, err = store.GetBoard(aliceBoard.BoardID, alice.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteTasksByBoard(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()

	user, err := store.CreateUser(&models.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)
	board, err := store.CreateBoard(&models.Board{Title: "Work", UserID: user.UserID})
	require.NoError(t, err)
	other, err := store.CreateBoard(&models.Board{Title: "Home", UserID: user.UserID})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := store.CreateTask(&models.Task{Title: "t", Status: "todo", Priority: "low", BoardID: board.BoardID})
		require.NoError(t, err)
	}
	keep, err := store.CreateTask(&models.Task{Title: "keep", Status: "todo", Priority: "low", BoardID: other.BoardID})
	require.NoError(t, err)

	require.NoError(t, store.DeleteTasksByBoard(board.BoardID))

	gone, err := store.GetTasksByBoard(board.BoardID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := store.GetTasksByBoard(other.BoardID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, keep.TaskID, kept[0].TaskID)
}

func TestMemoryStore_UpdateUserPassword(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()

	assert.ErrorIs(t, store.UpdateUserPassword("nobody@x.com", "h"), ErrNotFound)

	_, err := store.CreateUser(&models.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)
	require.NoError(t, store.UpdateUserPassword("a@x.com", "new-hash"))

	user, err := store.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)
}
