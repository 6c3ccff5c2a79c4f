package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
)

func TestCategoryRepository_SoftDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()
	authorID := uuid.New()

	board := seedBoard(t, db, authorID, "Q3")
	category := seedCategory(t, db, board.ID, "Health")
	sibling := seedCategory(t, db, board.ID, "Career")
	goal := seedGoal(t, db, category.ID, authorID, "Run", domain.GoalStatusToDo)
	siblingGoal := seedGoal(t, db, sibling.ID, authorID, "Ship", domain.GoalStatusToDo)

	require.NoError(t, repo.SoftDeleteCascade(ctx, category.ID))

	_, err := repo.FindByID(ctx, category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	goalRepo := NewGoalRepository(db)
	archived, err := goalRepo.FindByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived())

	// the sibling category and its goals stay live
	_, err = repo.FindByID(ctx, sibling.ID)
	assert.NoError(t, err)
	untouched, err := goalRepo.FindByID(ctx, siblingGoal.ID)
	require.NoError(t, err)
	assert.False(t, untouched.IsArchived())
}

func TestCategoryRepository_FindByBoardID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, uuid.New(), "Q3")
	seedCategory(t, db, board.ID, "Career")
	seedCategory(t, db, board.ID, "Health")
	gone := seedCategory(t, db, board.ID, "Old")
	require.NoError(t, repo.SoftDeleteCascade(ctx, gone.ID))

	categories, err := repo.FindByBoardID(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Career", categories[0].Title, "sorted by title")
	assert.Equal(t, "Health", categories[1].Title)
}

func TestCategoryRepository_FindOpenByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	boardRepo := NewBoardRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	mine := seedBoard(t, db, userID, "Mine")
	seedCategory(t, db, mine.ID, "Health")

	// membership counts regardless of role
	shared := seedBoard(t, db, uuid.New(), "Shared")
	require.NoError(t, db.Create(&domain.Participant{
		BoardID: shared.ID, UserID: userID, Role: domain.RoleReader,
	}).Error)
	seedCategory(t, db, shared.ID, "Career")

	foreign := seedBoard(t, db, uuid.New(), "Foreign")
	seedCategory(t, db, foreign.ID, "Hidden")

	deleted := seedBoard(t, db, userID, "Deleted")
	seedCategory(t, db, deleted.ID, "Buried")
	require.NoError(t, boardRepo.SoftDeleteCascade(ctx, deleted.ID))

	categories, err := repo.FindOpenByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Career", categories[0].Title)
	assert.Equal(t, "Health", categories[1].Title)
}
