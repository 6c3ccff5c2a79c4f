package domain

// User represents an account that can own and participate in boards.
// Credentials are managed by the auth service; this service only reads
// the identity columns it needs for display.
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex:uq_users_username" json:"username"`
	Email        string `gorm:"type:varchar(255)" json:"email,omitempty"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
