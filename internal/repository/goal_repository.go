package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
)

// GoalRepository defines the interface for goal data access
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Goal, error)
	FindActiveByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Archive(ctx context.Context, goalID uuid.UUID) error
}

// goalRepositoryImpl is the GORM implementation of GoalRepository
type goalRepositoryImpl struct {
	db *gorm.DB
}

// NewGoalRepository creates a new instance of GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepositoryImpl{db: db}
}

// Create creates a new goal
func (r *goalRepositoryImpl) Create(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// FindByID finds a goal by ID, archived ones included. Callers decide
// whether archived counts as absent for their operation.
func (r *goalRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	var goal domain.Goal
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByCategoryID finds all non-archived goals of a category
func (r *goalRepositoryImpl) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND status <> ?", categoryID, domain.GoalStatusArchived).
		Order("title ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// FindActiveByAuthor finds all non-archived goals created by the user
func (r *goalRepositoryImpl) FindActiveByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("author_id = ? AND status <> ?", authorID, domain.GoalStatusArchived).
		Order("title ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// Update updates a goal
func (r *goalRepositoryImpl) Update(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

// Archive sets the goal's status to archived. Archiving an already
// archived goal matches zero rows and is a no-op.
func (r *goalRepositoryImpl) Archive(ctx context.Context, goalID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Goal{}).
		Where("id = ? AND status <> ?", goalID, domain.GoalStatusArchived).
		Update("status", domain.GoalStatusArchived).Error
}
