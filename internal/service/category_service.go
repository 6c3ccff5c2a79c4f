package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-board-api/internal/auth"
	"goal-board-api/internal/domain"
	"goal-board-api/internal/dto"
	"goal-board-api/internal/repository"
	"goal-board-api/internal/response"
)

// CategoryService defines the interface for goal category business logic
type CategoryService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Get(ctx context.Context, actorID, categoryID uuid.UUID) (*dto.CategoryResponse, error)
	ListByBoard(ctx context.Context, actorID, boardID uuid.UUID) ([]*dto.CategoryResponse, error)
	ListOpenForUser(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryResponse, error)
	Update(ctx context.Context, actorID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, actorID, categoryID uuid.UUID) error
}

// categoryServiceImpl is the implementation of CategoryService
type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
	boardRepo    repository.BoardRepository
	authorizer   auth.Authorizer
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	boardRepo repository.BoardRepository,
	authorizer auth.Authorizer,
	logger *zap.Logger,
) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		boardRepo:    boardRepo,
		authorizer:   authorizer,
		logger:       logger,
	}
}

// Create adds a category to a board. A deleted board reads as absent,
// and only owners and writers may add categories.
func (s *categoryServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.boardRepo.FindByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}

	category := &domain.GoalCategory{
		BoardID: req.BoardID,
		Title:   req.Title,
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, category); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create category", err.Error())
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("board_id", req.BoardID.String()),
	)
	return dto.ToCategoryResponse(category), nil
}

// Get returns a category on a board the actor participates in
func (s *categoryServiceImpl) Get(ctx context.Context, actorID, categoryID uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionRead, category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// ListByBoard lists the board's non-deleted categories
func (s *categoryServiceImpl) ListByBoard(ctx context.Context, actorID, boardID uuid.UUID) ([]*dto.CategoryResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionRead, board); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list categories", err.Error())
	}
	resp := make([]*dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, dto.ToCategoryResponse(category))
	}
	return resp, nil
}

// ListOpenForUser lists every non-deleted category on non-deleted
// boards the user participates in. Membership itself grants read, so
// no further authorization check is needed.
func (s *categoryServiceImpl) ListOpenForUser(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list categories", err.Error())
	}
	resp := make([]*dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, dto.ToCategoryResponse(category))
	}
	return resp, nil
}

// Update renames a category. Owner or writer only.
func (s *categoryServiceImpl) Update(ctx context.Context, actorID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, category); err != nil {
		return nil, err
	}

	category.Title = req.Title
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update category", err.Error())
	}
	return dto.ToCategoryResponse(category), nil
}

// Delete soft-deletes the category and archives every non-archived
// goal under it in one transaction. Owner or writer only.
func (s *categoryServiceImpl) Delete(ctx context.Context, actorID, categoryID uuid.UUID) error {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, category); err != nil {
		return err
	}

	if err := s.categoryRepo.SoftDeleteCascade(ctx, categoryID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete category", err.Error())
	}

	s.logger.Info("Category deleted",
		zap.String("category_id", categoryID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

func (s *categoryServiceImpl) findCategory(ctx context.Context, categoryID uuid.UUID) (*domain.GoalCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Category not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load category", err.Error())
	}
	return category, nil
}
