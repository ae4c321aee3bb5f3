package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamRole is the ranked role of a user within a team.
type TeamRole string

const (
	TeamRoleMember TeamRole = "member"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleOwner  TeamRole = "owner"
)

var roleRank = map[TeamRole]int{
	TeamRoleMember: 1,
	TeamRoleAdmin:  2,
	TeamRoleOwner:  3,
}

// Rank returns the privilege rank of the role. Unknown roles rank below
// member so a corrupted row never grants access.
func (r TeamRole) Rank() int {
	return roleRank[r]
}

// AtLeast reports whether the role grants the privileges of required.
func (r TeamRole) AtLeast(required TeamRole) bool {
	return r.Rank() >= required.Rank()
}

// TeamMember is one membership row per (team, user) pair. The composite
// unique index makes concurrent add-member idempotent at the storage layer:
// a second insert for the same pair fails instead of duplicating membership.
type TeamMember struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_members_pair" validate:"required"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_members_pair" validate:"required"`
	Role     TeamRole  `json:"role" gorm:"type:varchar(20);not null;default:'member'" validate:"required,oneof=member admin owner"`
	JoinedAt time.Time `json:"joined_at"`

	// Relationships
	Team Team `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}

// BeforeCreate sets the UUID and join time if not already set
func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}
