package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Profile holds the public, user-editable part of an account. One-to-one
// with User. Teams is a denormalized back-reference to every team the user
// belongs to, stored most-recent-first as JSONB [{team_id, name}]. It must
// stay consistent with the team_members rows for that user.
type Profile struct {
	BaseModel
	UserID   uuid.UUID       `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_profiles_user_id;not null" validate:"required"`
	Location string          `json:"location" gorm:"size:200"`
	Skills   json.RawMessage `json:"skills" gorm:"type:jsonb"`
	Social   json.RawMessage `json:"social" gorm:"type:jsonb"`
	Teams    json.RawMessage `json:"teams" gorm:"type:jsonb"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
