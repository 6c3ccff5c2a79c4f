package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-board-api/internal/domain"
)

func TestGoalRepository_Archive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	authorID := uuid.New()

	board := seedBoard(t, db, authorID, "Q3")
	category := seedCategory(t, db, board.ID, "Health")
	goal := seedGoal(t, db, category.ID, authorID, "Run", domain.GoalStatusInProgress)

	require.NoError(t, repo.Archive(ctx, goal.ID))

	found, err := repo.FindByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, found.IsArchived())
	firstUpdate := found.UpdatedAt

	// a second archive matches zero rows and leaves the row alone
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.Archive(ctx, goal.ID))

	again, err := repo.FindByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, again.IsArchived())
	assert.Equal(t, firstUpdate, again.UpdatedAt)
}

func TestGoalRepository_FindByCategoryID_SkipsArchived(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	authorID := uuid.New()

	board := seedBoard(t, db, authorID, "Q3")
	category := seedCategory(t, db, board.ID, "Health")
	seedGoal(t, db, category.ID, authorID, "Run", domain.GoalStatusToDo)
	seedGoal(t, db, category.ID, authorID, "Old", domain.GoalStatusArchived)

	goals, err := repo.FindByCategoryID(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Run", goals[0].Title)
}

func TestGoalRepository_FindActiveByAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	authorID := uuid.New()
	otherID := uuid.New()

	board := seedBoard(t, db, authorID, "Q3")
	category := seedCategory(t, db, board.ID, "Health")
	seedGoal(t, db, category.ID, authorID, "Run", domain.GoalStatusToDo)
	seedGoal(t, db, category.ID, authorID, "Gone", domain.GoalStatusArchived)
	seedGoal(t, db, category.ID, otherID, "Theirs", domain.GoalStatusToDo)

	goals, err := repo.FindActiveByAuthor(ctx, authorID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Run", goals[0].Title)
	assert.Equal(t, "Health", goals[0].Category.Title, "category preloaded for listings")
}

func TestGoalRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	authorID := uuid.New()

	board := seedBoard(t, db, authorID, "Q3")
	category := seedCategory(t, db, board.ID, "Health")
	goal := seedGoal(t, db, category.ID, authorID, "Run", domain.GoalStatusToDo)

	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	goal.Status = domain.GoalStatusDone
	goal.Priority = domain.GoalPriorityHigh
	goal.DueDate = &due
	require.NoError(t, repo.Update(ctx, goal))

	found, err := repo.FindByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusDone, found.Status)
	assert.Equal(t, domain.GoalPriorityHigh, found.Priority)
	require.NotNil(t, found.DueDate)
	assert.True(t, due.Equal(*found.DueDate))
}
