package dto

import (
	"time"

	"github.com/google/uuid"

	"goal-board-api/internal/domain"
)

// CreateCommentRequest represents the request to comment on a goal
type CreateCommentRequest struct {
	GoalID uuid.UUID `json:"goalId" binding:"required" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Text   string    `json:"text" binding:"required"`
}

// UpdateCommentRequest represents the request to edit a comment
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse represents the comment response
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	GoalID    uuid.UUID `json:"goalId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCommentResponse converts a domain comment to its response shape
func ToCommentResponse(comment *domain.GoalComment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		GoalID:    comment.GoalID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
