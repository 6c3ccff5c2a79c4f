package dto

import (
	"time"

	"github.com/google/uuid"

	"goal-board-api/internal/domain"
)

// CreateGoalRequest represents the request to create a goal
// @Description Status always starts at to_do; priority defaults to medium
type CreateGoalRequest struct {
	CategoryID  uuid.UUID  `json:"categoryId" binding:"required" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Title       string     `json:"title" binding:"required,max=255" example:"Run a marathon"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high critical" example:"high"`
}

// UpdateGoalRequest represents the request to update a goal.
// Transitions out of archived are rejected; use status archived (or the
// delete endpoint) to retire a goal.
type UpdateGoalRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=to_do in_progress done archived" example:"in_progress"`
	Priority    *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high critical"`
}

// GoalResponse represents the goal response
type GoalResponse struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  uuid.UUID  `json:"categoryId"`
	AuthorID    uuid.UUID  `json:"authorId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status" example:"to_do"`
	Priority    string     `json:"priority" example:"medium"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToGoalResponse converts a domain goal to its response shape
func ToGoalResponse(goal *domain.Goal) *GoalResponse {
	return &GoalResponse{
		ID:          goal.ID,
		CategoryID:  goal.CategoryID,
		AuthorID:    goal.AuthorID,
		Title:       goal.Title,
		Description: goal.Description,
		DueDate:     goal.DueDate,
		Status:      goal.Status.String(),
		Priority:    goal.Priority.String(),
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}
