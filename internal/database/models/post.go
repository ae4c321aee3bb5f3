package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Post is a piece of content authored by a user, optionally attached to
// exactly one team (TeamID is nil while unattached). Author name and avatar
// are denormalized so the post survives author deletion; likes and comments
// are JSONB lists, comments denormalize the commenter the same way.
type Post struct {
	BaseModel
	UserID       uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index" validate:"required"`
	TeamID       *uuid.UUID      `json:"team_id,omitempty" gorm:"type:uuid;index"`
	Text         string          `json:"text" gorm:"not null;size:2000" validate:"required,max=2000"`
	AuthorName   string          `json:"author_name" gorm:"size:200"`
	AuthorAvatar string          `json:"author_avatar" gorm:"size:255"`
	Likes        json.RawMessage `json:"likes" gorm:"type:jsonb"`
	Comments     json.RawMessage `json:"comments" gorm:"type:jsonb"`

	// Relationships
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Post
func (Post) TableName() string {
	return "posts"
}
