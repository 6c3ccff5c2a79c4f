package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
)

func TestBoardRepository_CreateWithOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	board := &domain.Board{Title: "Q3 Goals"}
	require.NoError(t, repo.CreateWithOwner(ctx, board, ownerID))

	found, err := repo.FindByID(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, found.Participants, 1)
	assert.Equal(t, ownerID, found.Participants[0].UserID)
	assert.Equal(t, domain.RoleOwner, found.Participants[0].Role)
	assert.Equal(t, int64(1), countOwners(t, db, board.ID))
}

func TestBoardRepository_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	seedBoard(t, db, userID, "Beta")
	seedBoard(t, db, userID, "Alpha")
	seedBoard(t, db, uuid.New(), "Someone else's")
	deleted := seedBoard(t, db, userID, "Gone")
	require.NoError(t, repo.SoftDeleteCascade(ctx, deleted.ID))

	boards, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "Alpha", boards[0].Title, "sorted by title")
	assert.Equal(t, "Beta", boards[1].Title)
}

func TestBoardRepository_SoftDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	board := seedBoard(t, db, ownerID, "Doomed")
	category := seedCategory(t, db, board.ID, "Health")
	active := seedGoal(t, db, category.ID, ownerID, "Run", domain.GoalStatusInProgress)
	done := seedGoal(t, db, category.ID, ownerID, "Read", domain.GoalStatusDone)

	// an unrelated board must stay untouched
	other := seedBoard(t, db, ownerID, "Survivor")
	otherCategory := seedCategory(t, db, other.ID, "Career")
	otherGoal := seedGoal(t, db, otherCategory.ID, ownerID, "Ship", domain.GoalStatusToDo)

	require.NoError(t, repo.SoftDeleteCascade(ctx, board.ID))

	_, err := repo.FindByID(ctx, board.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "deleted board reads as absent")

	_, err = NewCategoryRepository(db).FindByID(ctx, category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "cascade reaches categories")

	goalRepo := NewGoalRepository(db)
	for _, id := range []uuid.UUID{active.ID, done.ID} {
		goal, err := goalRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, goal.IsArchived(), "cascade archives live goals")
	}

	survivor, err := goalRepo.FindByID(ctx, otherGoal.ID)
	require.NoError(t, err)
	assert.False(t, survivor.IsArchived())
	_, err = repo.FindByID(ctx, other.ID)
	assert.NoError(t, err)
}

func TestBoardRepository_SoftDeleteCascade_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, uuid.New(), "Twice")
	require.NoError(t, repo.SoftDeleteCascade(ctx, board.ID))
	require.NoError(t, repo.SoftDeleteCascade(ctx, board.ID))
}

func TestBoardRepository_ReplaceParticipants(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()
	oldWriter := uuid.New()
	newWriter := uuid.New()
	newReader := uuid.New()

	board := seedBoard(t, db, ownerID, "Team")
	require.NoError(t, db.Create(&domain.Participant{
		BoardID: board.ID, UserID: oldWriter, Role: domain.RoleWriter,
	}).Error)

	newTitle := "Renamed Team"
	roster := []*domain.Participant{
		{BoardID: board.ID, UserID: newWriter, Role: domain.RoleWriter},
		{BoardID: board.ID, UserID: newReader, Role: domain.RoleReader},
	}
	require.NoError(t, repo.ReplaceParticipants(ctx, board.ID, ownerID, roster, &newTitle))

	found, err := repo.FindByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Team", found.Title)

	roles := make(map[uuid.UUID]domain.Role, len(found.Participants))
	for _, p := range found.Participants {
		roles[p.UserID] = p.Role
	}
	assert.Equal(t, domain.Role("owner"), roles[ownerID], "the kept user survives every swap")
	assert.Equal(t, domain.RoleWriter, roles[newWriter])
	assert.Equal(t, domain.RoleReader, roles[newReader])
	assert.NotContains(t, roles, oldWriter)
	assert.Equal(t, int64(1), countOwners(t, db, board.ID))
}

func TestBoardRepository_ReplaceParticipants_DuplicateRowsSkipped(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()
	writer := uuid.New()

	board := seedBoard(t, db, ownerID, "Team")
	roster := []*domain.Participant{
		{BoardID: board.ID, UserID: writer, Role: domain.RoleWriter},
		{BoardID: board.ID, UserID: writer, Role: domain.RoleReader},
	}
	require.NoError(t, repo.ReplaceParticipants(ctx, board.ID, ownerID, roster, nil))

	var n int64
	require.NoError(t, db.Model(&domain.Participant{}).
		Where("board_id = ? AND user_id = ?", board.ID, writer).
		Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

// Property: no sequence of roster swaps can change how many owner rows
// a board has. The owner is written once, at creation, and kept through
// every ReplaceParticipants call.
func TestBoardRepository_SingleOwnerProperty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()
	board := seedBoard(t, db, ownerID, "Invariant")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)
	properties.Property("exactly one owner after any roster swap", prop.ForAll(
		func(memberCount int, readers []bool) bool {
			roster := make([]*domain.Participant, 0, memberCount)
			for i := 0; i < memberCount; i++ {
				role := domain.RoleWriter
				if i < len(readers) && readers[i] {
					role = domain.RoleReader
				}
				roster = append(roster, &domain.Participant{
					BoardID: board.ID,
					UserID:  uuid.New(),
					Role:    role,
				})
			}
			if err := repo.ReplaceParticipants(ctx, board.ID, ownerID, roster, nil); err != nil {
				return false
			}
			return countOwners(t, db, board.ID) == 1
		},
		gen.IntRange(0, 8),
		gen.SliceOf(gen.Bool()),
	))
	properties.TestingRun(t)
}
