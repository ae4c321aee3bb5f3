package repository

import (
	"teamup-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByIDs(ids []uuid.UUID) ([]models.User, error)
	GetAll(limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// ProfileRepositoryInterface defines the interface for profile repository operations
type ProfileRepositoryInterface interface {
	Create(profile *models.Profile) error
	GetByUserID(userID uuid.UUID) (*models.Profile, error)
	GetWithUser(userID uuid.UUID) (*models.Profile, error)
	GetAll(limit, offset int) ([]models.Profile, int64, error)
	Update(profile *models.Profile) error
	Delete(id uuid.UUID) error
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(team *models.Team) error
	GetByID(id uuid.UUID) (*models.Team, error)
	GetByName(name string) (*models.Team, error)
	GetAll(limit, offset int) ([]models.Team, int64, error)
	GetWithMemberships(id uuid.UUID) (*models.Team, error)
	Update(team *models.Team) error
	Delete(id uuid.UUID) error
	AddMembership(membership *models.TeamMember) error
	GetMembership(teamID, userID uuid.UUID) (*models.TeamMember, error)
	GetMembershipsByTeam(teamID uuid.UUID) ([]models.TeamMember, error)
	GetMembershipsByUser(userID uuid.UUID) ([]models.TeamMember, error)
	UpdateMembership(membership *models.TeamMember) error
	RemoveMembership(teamID, userID uuid.UUID) error
	GetMemberCount(teamID uuid.UUID) (int64, error)
}

// PostRepositoryInterface defines the interface for post repository operations
type PostRepositoryInterface interface {
	Create(post *models.Post) error
	GetByID(id uuid.UUID) (*models.Post, error)
	GetByTeamID(teamID uuid.UUID) ([]models.Post, error)
	GetByUserID(userID uuid.UUID) ([]models.Post, error)
	Update(post *models.Post) error
	Delete(id uuid.UUID) error
	DeleteByTeamID(teamID uuid.UUID) error
}
