package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"goal-board-api/internal/database"
	"goal-board-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedBoard(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *domain.Board {
	t.Helper()
	board := &domain.Board{Title: title}
	require.NoError(t, NewBoardRepository(db).CreateWithOwner(context.Background(), board, ownerID))
	return board
}

func seedCategory(t *testing.T, db *gorm.DB, boardID uuid.UUID, title string) *domain.GoalCategory {
	t.Helper()
	category := &domain.GoalCategory{BoardID: boardID, Title: title}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), category))
	return category
}

func seedGoal(t *testing.T, db *gorm.DB, categoryID, authorID uuid.UUID, title string, status domain.GoalStatus) *domain.Goal {
	t.Helper()
	goal := &domain.Goal{
		CategoryID: categoryID,
		AuthorID:   authorID,
		Title:      title,
		Status:     status,
		Priority:   domain.GoalPriorityMedium,
	}
	require.NoError(t, NewGoalRepository(db).Create(context.Background(), goal))
	return goal
}

func countOwners(t *testing.T, db *gorm.DB, boardID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.Participant{}).
		Where("board_id = ? AND role = ?", boardID, domain.RoleOwner).
		Count(&n).Error)
	return n
}
