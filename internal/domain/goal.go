package domain

import (
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents the workflow state of a goal. Archived is
// terminal and doubles as the goal's soft-delete marker.
type GoalStatus int16

const (
	GoalStatusToDo GoalStatus = iota + 1
	GoalStatusInProgress
	GoalStatusDone
	GoalStatusArchived
)

// String returns the wire label for the status
func (s GoalStatus) String() string {
	switch s {
	case GoalStatusToDo:
		return "to_do"
	case GoalStatusInProgress:
		return "in_progress"
	case GoalStatusDone:
		return "done"
	case GoalStatusArchived:
		return "archived"
	}
	return "unknown"
}

// Valid reports whether the status is one of the known values
func (s GoalStatus) Valid() bool {
	return s >= GoalStatusToDo && s <= GoalStatusArchived
}

// ParseGoalStatus maps a wire label to a status
func ParseGoalStatus(label string) (GoalStatus, bool) {
	switch label {
	case "to_do":
		return GoalStatusToDo, true
	case "in_progress":
		return GoalStatusInProgress, true
	case "done":
		return GoalStatusDone, true
	case "archived":
		return GoalStatusArchived, true
	}
	return 0, false
}

// GoalPriority represents how urgent a goal is
type GoalPriority int16

const (
	GoalPriorityLow GoalPriority = iota + 1
	GoalPriorityMedium
	GoalPriorityHigh
	GoalPriorityCritical
)

// String returns the wire label for the priority
func (p GoalPriority) String() string {
	switch p {
	case GoalPriorityLow:
		return "low"
	case GoalPriorityMedium:
		return "medium"
	case GoalPriorityHigh:
		return "high"
	case GoalPriorityCritical:
		return "critical"
	}
	return "unknown"
}

// Valid reports whether the priority is one of the known values
func (p GoalPriority) Valid() bool {
	return p >= GoalPriorityLow && p <= GoalPriorityCritical
}

// ParseGoalPriority maps a wire label to a priority
func ParseGoalPriority(label string) (GoalPriority, bool) {
	switch label {
	case "low":
		return GoalPriorityLow, true
	case "medium":
		return GoalPriorityMedium, true
	case "high":
		return GoalPriorityHigh, true
	case "critical":
		return GoalPriorityCritical, true
	}
	return 0, false
}

// Goal is a tracked objective inside a category. There is no separate
// deletion flag; setting Status to archived retires the goal.
type Goal struct {
	BaseModel
	CategoryID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_goals_category_id" json:"category_id"`
	AuthorID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_goals_author_id" json:"author_id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	DueDate     *time.Time   `gorm:"type:timestamp;index:idx_goals_due_date" json:"due_date,omitempty"`
	Status      GoalStatus   `gorm:"type:smallint;not null;default:1;index:idx_goals_status" json:"status"`
	Priority    GoalPriority `gorm:"type:smallint;not null;default:2" json:"priority"`
	Category    GoalCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Comments    []GoalComment `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// IsArchived reports whether the goal has reached its terminal state
func (g *Goal) IsArchived() bool {
	return g.Status == GoalStatusArchived
}

// TableName specifies the table name for Goal
func (Goal) TableName() string {
	return "goals"
}
