package bot

import (
	"fmt"

	"github.com/google/uuid"
)

// State is a step in the guided goal-creation flow
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingCategory State = "awaiting_category"
	StateAwaitingTitle    State = "awaiting_title"
)

// CategoryOption is one category offered to the user, addressed by the
// ordinal shown in the chat
type CategoryOption struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// Conversation is the in-progress flow state for one (chat, user) pair.
// State is keyed per pair and never shared across chats; a stale flow
// simply expires from the store.
type Conversation struct {
	ChatID   int64            `json:"chat_id"`
	UserID   uuid.UUID        `json:"user_id"`
	State    State            `json:"state"`
	Options  []CategoryOption `json:"options,omitempty"`
	Category *CategoryOption  `json:"category,omitempty"`
}

// Key returns the storage key for a (chat, user) pair
func Key(chatID int64, userID uuid.UUID) string {
	return fmt.Sprintf("conversation:%d:%s", chatID, userID)
}
