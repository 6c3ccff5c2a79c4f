package dto

import (
	"time"

	"github.com/google/uuid"

	"goal-board-api/internal/domain"
)

// CreateCategoryRequest represents the request to create a goal category
type CreateCategoryRequest struct {
	BoardID uuid.UUID `json:"boardId" binding:"required" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Title   string    `json:"title" binding:"required,max=255" example:"Health"`
}

// UpdateCategoryRequest represents the request to rename a category
type UpdateCategoryRequest struct {
	Title string `json:"title" binding:"required,max=255" example:"Fitness"`
}

// CategoryResponse represents the category response
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"boardId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCategoryResponse converts a domain category to its response shape
func ToCategoryResponse(category *domain.GoalCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:        category.ID,
		BoardID:   category.BoardID,
		Title:     category.Title,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
