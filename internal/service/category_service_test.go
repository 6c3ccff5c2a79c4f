package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-board-api/internal/auth"
	"goal-board-api/internal/domain"
	"goal-board-api/internal/dto"
	"goal-board-api/internal/response"
)

func TestCategoryService_Create(t *testing.T) {
	actorID := uuid.New()
	boardID := uuid.New()

	liveBoardRepo := &mockBoardRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: id}, Title: "Q3"}, nil
		},
	}

	t.Run("success", func(t *testing.T) {
		var created *domain.GoalCategory
		categoryRepo := &mockCategoryRepo{
			CreateFunc: func(ctx context.Context, category *domain.GoalCategory) error {
				category.ID = uuid.New()
				created = category
				return nil
			},
		}
		svc := NewCategoryService(categoryRepo, liveBoardRepo, &mockAuthorizer{}, zap.NewNop())

		resp, err := svc.Create(context.Background(), actorID, &dto.CreateCategoryRequest{
			BoardID: boardID,
			Title:   "Health",
		})

		require.NoError(t, err)
		assert.Equal(t, boardID, created.BoardID)
		assert.Equal(t, "Health", resp.Title)
	})

	t.Run("deleted board reads as absent", func(t *testing.T) {
		boardRepo := &mockBoardRepo{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewCategoryService(&mockCategoryRepo{}, boardRepo, &mockAuthorizer{}, zap.NewNop())

		_, err := svc.Create(context.Background(), actorID, &dto.CreateCategoryRequest{BoardID: boardID, Title: "x"})

		assert.Equal(t, response.ErrCodeNotFound, appErrCode(t, err))
	})

	t.Run("reader may not create categories", func(t *testing.T) {
		svc := NewCategoryService(&mockCategoryRepo{}, liveBoardRepo, denyAll(), zap.NewNop())

		_, err := svc.Create(context.Background(), actorID, &dto.CreateCategoryRequest{BoardID: boardID, Title: "x"})

		assert.ErrorIs(t, err, auth.ErrPermissionDenied)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	actorID := uuid.New()
	categoryID := uuid.New()

	t.Run("cascade is delegated to the repository", func(t *testing.T) {
		var cascaded uuid.UUID
		categoryRepo := &mockCategoryRepo{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
				return &domain.GoalCategory{BaseModel: domain.BaseModel{ID: id}, BoardID: uuid.New()}, nil
			},
			SoftDeleteCascadeFunc: func(ctx context.Context, id uuid.UUID) error {
				cascaded = id
				return nil
			},
		}
		svc := NewCategoryService(categoryRepo, &mockBoardRepo{}, &mockAuthorizer{}, zap.NewNop())

		require.NoError(t, svc.Delete(context.Background(), actorID, categoryID))
		assert.Equal(t, categoryID, cascaded)
	})

	t.Run("absent category", func(t *testing.T) {
		categoryRepo := &mockCategoryRepo{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewCategoryService(categoryRepo, &mockBoardRepo{}, &mockAuthorizer{}, zap.NewNop())

		err := svc.Delete(context.Background(), actorID, categoryID)
		assert.Equal(t, response.ErrCodeNotFound, appErrCode(t, err))
	})

	t.Run("reader may not delete", func(t *testing.T) {
		categoryRepo := &mockCategoryRepo{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
				return &domain.GoalCategory{BaseModel: domain.BaseModel{ID: id}, BoardID: uuid.New()}, nil
			},
		}
		svc := NewCategoryService(categoryRepo, &mockBoardRepo{}, denyAll(), zap.NewNop())

		err := svc.Delete(context.Background(), actorID, categoryID)
		assert.ErrorIs(t, err, auth.ErrPermissionDenied)
	})
}

func TestCategoryService_ListOpenForUser(t *testing.T) {
	userID := uuid.New()

	t.Run("membership grants the listing, no extra check", func(t *testing.T) {
		categoryRepo := &mockCategoryRepo{
			FindOpenByUserFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.GoalCategory, error) {
				assert.Equal(t, userID, id)
				return []*domain.GoalCategory{
					{BaseModel: domain.BaseModel{ID: uuid.New()}, Title: "Health"},
					{BaseModel: domain.BaseModel{ID: uuid.New()}, Title: "Career"},
				}, nil
			},
		}
		svc := NewCategoryService(categoryRepo, &mockBoardRepo{}, denyAll(), zap.NewNop())

		resp, err := svc.ListOpenForUser(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "Health", resp[0].Title)
	})

	t.Run("no memberships yields an empty list", func(t *testing.T) {
		categoryRepo := &mockCategoryRepo{
			FindOpenByUserFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.GoalCategory, error) {
				return nil, nil
			},
		}
		svc := NewCategoryService(categoryRepo, &mockBoardRepo{}, &mockAuthorizer{}, zap.NewNop())

		resp, err := svc.ListOpenForUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Empty(t, resp)
		assert.NotNil(t, resp)
	})
}
