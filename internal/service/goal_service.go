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
	"goal-board-api/internal/metrics"
	"goal-board-api/internal/repository"
	"goal-board-api/internal/response"
)

// GoalService defines the interface for goal business logic
type GoalService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateGoalRequest) (*dto.GoalResponse, error)
	Get(ctx context.Context, actorID, goalID uuid.UUID) (*dto.GoalResponse, error)
	ListByCategory(ctx context.Context, actorID, categoryID uuid.UUID) ([]*dto.GoalResponse, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*dto.GoalResponse, error)
	Update(ctx context.Context, actorID, goalID uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error)
	Delete(ctx context.Context, actorID, goalID uuid.UUID) error
}

// goalServiceImpl is the implementation of GoalService
type goalServiceImpl struct {
	goalRepo     repository.GoalRepository
	categoryRepo repository.CategoryRepository
	authorizer   auth.Authorizer
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewGoalService creates a new instance of GoalService
func NewGoalService(
	goalRepo repository.GoalRepository,
	categoryRepo repository.CategoryRepository,
	authorizer auth.Authorizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) GoalService {
	return &goalServiceImpl{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		authorizer:   authorizer,
		metrics:      m,
		logger:       logger,
	}
}

// Create adds a goal to a category. A soft-deleted category reads as
// absent and never accepts new goals; owner or writer role required.
func (s *goalServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Category not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load category", err.Error())
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, category); err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		CategoryID:  req.CategoryID,
		AuthorID:    actorID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      domain.GoalStatusToDo,
		Priority:    domain.GoalPriorityMedium,
	}
	if req.Priority != nil {
		priority, ok := domain.ParseGoalPriority(*req.Priority)
		if !ok {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid priority", *req.Priority)
		}
		goal.Priority = priority
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create goal", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementGoalCreated()
	}
	s.logger.Info("Goal created",
		zap.String("goal_id", goal.ID.String()),
		zap.String("category_id", req.CategoryID.String()),
		zap.String("author_id", actorID.String()),
	)
	return dto.ToGoalResponse(goal), nil
}

// Get returns a non-archived goal the actor may read
func (s *goalServiceImpl) Get(ctx context.Context, actorID, goalID uuid.UUID) (*dto.GoalResponse, error) {
	goal, err := s.findLiveGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionRead, goal); err != nil {
		return nil, err
	}
	return dto.ToGoalResponse(goal), nil
}

// ListByCategory lists the category's non-archived goals
func (s *goalServiceImpl) ListByCategory(ctx context.Context, actorID, categoryID uuid.UUID) ([]*dto.GoalResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Category not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load category", err.Error())
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionRead, category); err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list goals", err.Error())
	}
	resp := make([]*dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		resp = append(resp, dto.ToGoalResponse(goal))
	}
	return resp, nil
}

// ListByAuthor lists the user's own non-archived goals across boards.
// Used by the bot's /goals command; no board role check is needed to
// read one's own goals.
func (s *goalServiceImpl) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*dto.GoalResponse, error) {
	goals, err := s.goalRepo.FindActiveByAuthor(ctx, authorID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list goals", err.Error())
	}
	resp := make([]*dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		resp = append(resp, dto.ToGoalResponse(goal))
	}
	return resp, nil
}

// Update mutates a live goal. Archived is terminal: an archived goal
// reads as absent here, so no transition out of archived is possible.
// Setting status to archived through this path is allowed and is
// equivalent to Delete.
func (s *goalServiceImpl) Update(ctx context.Context, actorID, goalID uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.findLiveGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, goal); err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.DueDate != nil {
		goal.DueDate = req.DueDate
	}
	if req.Status != nil {
		status, ok := domain.ParseGoalStatus(*req.Status)
		if !ok {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid status", *req.Status)
		}
		goal.Status = status
	}
	if req.Priority != nil {
		priority, ok := domain.ParseGoalPriority(*req.Priority)
		if !ok {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid priority", *req.Priority)
		}
		goal.Priority = priority
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update goal", err.Error())
	}
	return dto.ToGoalResponse(goal), nil
}

// Delete archives the goal. Archival is terminal and idempotent:
// deleting an already-archived goal is a silent no-op.
func (s *goalServiceImpl) Delete(ctx context.Context, actorID, goalID uuid.UUID) error {
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Goal not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load goal", err.Error())
	}
	if goal.IsArchived() {
		return nil
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, goal); err != nil {
		return err
	}

	if err := s.goalRepo.Archive(ctx, goalID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to archive goal", err.Error())
	}
	s.logger.Info("Goal archived",
		zap.String("goal_id", goalID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

// findLiveGoal loads a goal, treating archived ones as absent
func (s *goalServiceImpl) findLiveGoal(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Goal not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load goal", err.Error())
	}
	if goal.IsArchived() {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Goal not found", "")
	}
	return goal, nil
}
