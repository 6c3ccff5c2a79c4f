package domain

import "github.com/google/uuid"

// GoalComment represents a comment left on a goal. Creation is gated
// by board role, but edits and deletes belong to the author alone.
type GoalComment struct {
	BaseModel
	GoalID   uuid.UUID `gorm:"type:uuid;not null;index:idx_goal_comments_goal_id" json:"goal_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index:idx_goal_comments_author_id" json:"author_id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Goal     Goal      `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"goal,omitempty"`
}

// TableName specifies the table name for GoalComment
func (GoalComment) TableName() string {
	return "goal_comments"
}
