package domain

import "github.com/google/uuid"

// Role represents a participant's permission level on a board
type Role string

const (
	RoleOwner  Role = "owner"
	RoleWriter Role = "writer"
	RoleReader Role = "reader"
)

// Valid reports whether the role is one of the known values
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleWriter, RoleReader:
		return true
	}
	return false
}

// CanWriteGoals reports whether the role may create or mutate
// categories, goals and comments on its board
func (r Role) CanWriteGoals() bool {
	return r == RoleOwner || r == RoleWriter
}

// Participant represents a user's membership on a board with a role.
// The (board, user) pair is unique at the storage layer so concurrent
// role grants cannot produce duplicate rows.
type Participant struct {
	BaseModel
	BoardID uuid.UUID `gorm:"type:uuid;not null;index:idx_participants_board_id;uniqueIndex:uq_participants_board_user" json:"board_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_participants_user_id;uniqueIndex:uq_participants_board_user" json:"user_id"`
	Role    Role      `gorm:"type:varchar(50);not null;index:idx_participants_role" json:"role"`
	Board   Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "board_participants"
}
