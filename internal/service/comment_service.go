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

// CommentService defines the interface for goal comment business logic.
// Creation is gated by board role; edit and delete are gated by
// authorship alone. The asymmetry is deliberate.
type CommentService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByGoal(ctx context.Context, actorID, goalID uuid.UUID) ([]*dto.CommentResponse, error)
	Update(ctx context.Context, actorID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actorID, commentID uuid.UUID) error
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	goalRepo    repository.GoalRepository
	authorizer  auth.Authorizer
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	goalRepo repository.GoalRepository,
	authorizer auth.Authorizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		goalRepo:    goalRepo,
		authorizer:  authorizer,
		metrics:     m,
		logger:      logger,
	}
}

// Create attaches a comment to a live goal. An archived goal reads as
// absent; owner or writer role on the goal's board is required.
func (s *commentServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	goal, err := s.findLiveGoal(ctx, req.GoalID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, goal); err != nil {
		return nil, err
	}

	comment := &domain.GoalComment{
		GoalID:   req.GoalID,
		AuthorID: actorID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}
	return dto.ToCommentResponse(comment), nil
}

// ListByGoal lists the goal's comments, oldest first. An archived goal
// reads as absent, so its comments do too.
func (s *commentServiceImpl) ListByGoal(ctx context.Context, actorID, goalID uuid.UUID) ([]*dto.CommentResponse, error) {
	goal, err := s.findLiveGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionRead, goal); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByGoalID(ctx, goalID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list comments", err.Error())
	}
	resp := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp = append(resp, dto.ToCommentResponse(comment))
	}
	return resp, nil
}

// Update edits a comment. Authorship only; board role is irrelevant
// once the comment exists.
func (s *commentServiceImpl) Update(ctx context.Context, actorID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, comment); err != nil {
		return nil, err
	}
	if err := s.assertGoalLive(ctx, comment.GoalID); err != nil {
		return nil, err
	}

	comment.Text = req.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update comment", err.Error())
	}
	return dto.ToCommentResponse(comment), nil
}

// Delete removes a comment. Authorship only.
func (s *commentServiceImpl) Delete(ctx context.Context, actorID, commentID uuid.UUID) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.authorizer.CanPerform(ctx, actorID, auth.ActionWrite, comment); err != nil {
		return err
	}
	if err := s.assertGoalLive(ctx, comment.GoalID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}
	return nil
}

func (s *commentServiceImpl) findComment(ctx context.Context, commentID uuid.UUID) (*domain.GoalComment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comment", err.Error())
	}
	return comment, nil
}

// assertGoalLive makes comments on archived goals immutable: the
// comment row survives, but mutation surfaces as NotFound.
func (s *commentServiceImpl) assertGoalLive(ctx context.Context, goalID uuid.UUID) error {
	_, err := s.findLiveGoal(ctx, goalID)
	return err
}

func (s *commentServiceImpl) findLiveGoal(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
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
