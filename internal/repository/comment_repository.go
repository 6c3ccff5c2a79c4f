package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-board-api/internal/domain"
)

// CommentRepository defines the interface for goal comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.GoalComment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalComment, error)
	FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*domain.GoalComment, error)
	Update(ctx context.Context, comment *domain.GoalComment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create creates a new comment
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.GoalComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID finds a comment by ID
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.GoalComment, error) {
	var comment domain.GoalComment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByGoalID finds all comments of a goal, oldest first
func (r *commentRepositoryImpl) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*domain.GoalComment, error) {
	var comments []*domain.GoalComment
	if err := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Update updates a comment
func (r *commentRepositoryImpl) Update(ctx context.Context, comment *domain.GoalComment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes a comment
func (r *commentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.GoalComment{}, "id = ?", id).Error
}
