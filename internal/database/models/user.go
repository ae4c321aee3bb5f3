package models

// User represents a registered account. The password hash is never
// serialized; avatar is derived from the email at registration time.
type User struct {
	BaseModel
	FirstName    string `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName     string `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex:idx_users_email;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string `json:"-" gorm:"not null;size:100"`
	AvatarURL    string `json:"avatar_url" gorm:"size:255"`

	// Relationships
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
