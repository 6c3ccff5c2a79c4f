package dto

import (
	"time"

	"github.com/google/uuid"

	"goal-board-api/internal/domain"
)

// CreateBoardRequest represents the request to create a board
// @Description The creator becomes the board's owner atomically
type CreateBoardRequest struct {
	Title string `json:"title" binding:"required,max=255" example:"Q3 objectives"`
}

// RosterEntry is one (user, role) pair in a roster replacement
// @Description Role must be writer or reader; owner is assigned only at
// @Description board creation and cannot be granted through this path
type RosterEntry struct {
	UserID uuid.UUID   `json:"userId" binding:"required" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Role   domain.Role `json:"role" binding:"required,oneof=writer reader" example:"writer"`
}

// UpdateBoardRequest represents the request to replace a board's roster
// and optionally retitle it
type UpdateBoardRequest struct {
	Title        *string       `json:"title,omitempty" binding:"omitempty,max=255" example:"Q4 objectives"`
	Participants []RosterEntry `json:"participants" binding:"required,dive"`
}

// ParticipantResponse represents one membership record of a board
type ParticipantResponse struct {
	ID        uuid.UUID   `json:"id"`
	BoardID   uuid.UUID   `json:"boardId"`
	UserID    uuid.UUID   `json:"userId"`
	Role      domain.Role `json:"role" example:"writer"`
	CreatedAt time.Time   `json:"createdAt"`
}

// BoardResponse represents the board response
type BoardResponse struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Participants []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ToBoardResponse converts a domain board to its response shape
func ToBoardResponse(board *domain.Board) *BoardResponse {
	resp := &BoardResponse{
		ID:        board.ID,
		Title:     board.Title,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	}
	for _, p := range board.Participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{
			ID:        p.ID,
			BoardID:   p.BoardID,
			UserID:    p.UserID,
			Role:      p.Role,
			CreatedAt: p.CreatedAt,
		})
	}
	return resp
}
