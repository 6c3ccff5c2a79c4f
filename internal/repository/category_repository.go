package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
)

// CategoryRepository defines the interface for goal category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.GoalCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.GoalCategory, error)
	FindOpenByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GoalCategory, error)
	Update(ctx context.Context, category *domain.GoalCategory) error
	SoftDeleteCascade(ctx context.Context, categoryID uuid.UUID) error
}

// categoryRepositoryImpl is the GORM implementation of CategoryRepository
type categoryRepositoryImpl struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepositoryImpl{db: db}
}

// Create creates a new category
func (r *categoryRepositoryImpl) Create(ctx context.Context, category *domain.GoalCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindByID finds a non-deleted category by ID
func (r *categoryRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
	var category domain.GoalCategory
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByBoardID finds all non-deleted categories of a board
func (r *categoryRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.GoalCategory, error) {
	var categories []*domain.GoalCategory
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND is_deleted = ?", boardID, false).
		Order("title ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindOpenByUser finds all non-deleted categories on non-deleted boards
// the user participates in. Used by the bot's goal-creation flow.
func (r *categoryRepositoryImpl) FindOpenByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GoalCategory, error) {
	var categories []*domain.GoalCategory
	if err := r.db.WithContext(ctx).
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", userID).
		Where("goal_categories.is_deleted = ? AND boards.is_deleted = ?", false, false).
		Order("goal_categories.title ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update updates a category
func (r *categoryRepositoryImpl) Update(ctx context.Context, category *domain.GoalCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// SoftDeleteCascade marks the category deleted and archives every
// non-archived goal under it in one transaction.
func (r *categoryRepositoryImpl) SoftDeleteCascade(ctx context.Context, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.GoalCategory{}).
			Where("id = ?", categoryID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Goal{}).
			Where("category_id = ? AND status <> ?", categoryID, domain.GoalStatusArchived).
			Update("status", domain.GoalStatusArchived).Error
	})
}
