package dto

import (
	"github.com/google/uuid"

	"goal-board-api/internal/domain"
)

// VerifyTelegramRequest represents the request to redeem a bot
// verification code from the web account
type VerifyTelegramRequest struct {
	VerificationCode string `json:"verificationCode" binding:"required" example:"kX8p2mQ9rT4wZ7nB1vC6"`
}

// TelegramLinkResponse represents the telegram link response
type TelegramLinkResponse struct {
	ChatID int64      `json:"chatId"`
	UserID *uuid.UUID `json:"userId,omitempty"`
}

// ToTelegramLinkResponse converts a domain link to its response shape
func ToTelegramLinkResponse(link *domain.TelegramLink) *TelegramLinkResponse {
	return &TelegramLinkResponse{
		ChatID: link.ChatID,
		UserID: link.UserID,
	}
}
