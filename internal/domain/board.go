package domain

// Board is the top-level collaboration container grouping categories
// and participants. Boards are never physically deleted; IsDeleted
// marks them inactive and hides them from reads.
type Board struct {
	BaseModel
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	IsDeleted    bool           `gorm:"not null;default:false;index:idx_boards_is_deleted" json:"is_deleted"`
	Participants []Participant  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Categories   []GoalCategory `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}
