package testutils

import (
	"encoding/json"
	"fmt"
	"time"

	"teamup-backend/internal/database/models"

	"github.com/google/uuid"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		FirstName: "Dana",
		LastName:  "Cole",
		// Unique email derived from the ID so factories never collide
		Email:        fmt.Sprintf("dana.cole+%s@test.com", id.String()[:8]),
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		AvatarURL:    "https://www.gravatar.com/avatar/test?s=200",
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithName sets a custom first and last name for the user
func (f *UserFactory) WithName(first, last string) *models.User {
	user := f.Create()
	user.FirstName = first
	user.LastName = last
	return user
}

// ProfileFactory provides methods to create test Profile data
type ProfileFactory struct{}

// NewProfileFactory creates a new ProfileFactory
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// Create creates a test Profile with default values
func (f *ProfileFactory) Create() *models.Profile {
	return &models.Profile{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:   uuid.New(),
		Location: "Berlin",
		Skills:   json.RawMessage(`["go","postgres"]`),
		Social:   json.RawMessage(`{}`),
		Teams:    json.RawMessage(`[]`),
	}
}

// ForUser sets the user ID for the profile
func (f *ProfileFactory) ForUser(userID uuid.UUID) *models.Profile {
	profile := f.Create()
	profile.UserID = userID
	return profile
}

// WithTeams sets the denormalized team references for the profile
func (f *ProfileFactory) WithTeams(teams json.RawMessage) *models.Profile {
	profile := f.Create()
	profile.Teams = teams
	return profile
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values
func (f *TeamFactory) Create() *models.Team {
	id := uuid.New()
	return &models.Team{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		// Unique name derived from the ID so factories never collide
		Name:        "test-team-" + id.String()[:8],
		Description: "A team for testing purposes",
	}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// MembershipFactory provides methods to create test TeamMember data
type MembershipFactory struct{}

// NewMembershipFactory creates a new MembershipFactory
func NewMembershipFactory() *MembershipFactory {
	return &MembershipFactory{}
}

// Create creates a test membership with the member role
func (f *MembershipFactory) Create(teamID, userID uuid.UUID) *models.TeamMember {
	return &models.TeamMember{
		ID:       uuid.New(),
		TeamID:   teamID,
		UserID:   userID,
		Role:     models.TeamRoleMember,
		JoinedAt: time.Now().UTC(),
	}
}

// WithRole creates a membership with a specific role
func (f *MembershipFactory) WithRole(teamID, userID uuid.UUID, role models.TeamRole) *models.TeamMember {
	m := f.Create(teamID, userID)
	m.Role = role
	return m
}

// PostFactory provides methods to create test Post data
type PostFactory struct{}

// NewPostFactory creates a new PostFactory
func NewPostFactory() *PostFactory {
	return &PostFactory{}
}

// Create creates an unattached test Post authored by the given user
func (f *PostFactory) Create(userID uuid.UUID) *models.Post {
	return &models.Post{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:       userID,
		Text:         "A test post",
		AuthorName:   "Dana Cole",
		AuthorAvatar: "https://www.gravatar.com/avatar/test?s=200",
		Likes:        json.RawMessage(`[]`),
		Comments:     json.RawMessage(`[]`),
	}
}

// InTeam creates a test Post attached to the given team
func (f *PostFactory) InTeam(userID, teamID uuid.UUID) *models.Post {
	post := f.Create(userID)
	post.TeamID = &teamID
	return post
}
