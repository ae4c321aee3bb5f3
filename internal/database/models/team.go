package models

// Team is the aggregate root for group collaboration. Role membership lives
// in team_members (one ranked row per user) rather than separate
// owner/admin/member arrays, so an owner is always a member structurally.
type Team struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex:idx_teams_name;not null;size:100" validate:"required,min=1,max=100"`
	Description string `json:"description" gorm:"size:500" validate:"max=500"`

	// Relationships
	Memberships []TeamMember `json:"memberships,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Posts       []Post       `json:"posts,omitempty" gorm:"foreignKey:TeamID"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}
