package domain

import "github.com/google/uuid"

// TelegramLink binds a Telegram chat to at most one user. The link is
// created unverified on first contact and becomes verified exactly once
// when the verification code is redeemed through the web account.
type TelegramLink struct {
	BaseModel
	ChatID           int64      `gorm:"not null;uniqueIndex:uq_telegram_links_chat_id" json:"chat_id"`
	UserID           *uuid.UUID `gorm:"type:uuid;index:idx_telegram_links_user_id" json:"user_id,omitempty"`
	VerificationCode string     `gorm:"type:varchar(64);index:idx_telegram_links_code" json:"-"`
}

// IsVerified reports whether the chat has been bound to a user
func (l *TelegramLink) IsVerified() bool {
	return l.UserID != nil
}

// TableName specifies the table name for TelegramLink
func (TelegramLink) TableName() string {
	return "telegram_links"
}
