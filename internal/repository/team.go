package repository

import (
	"teamup-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamRepository handles database operations for teams and their
// membership rows
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team
func (r *TeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByName retrieves a team by its globally unique name (case-sensitive
// exact match)
func (r *TeamRepository) GetByName(name string) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetAll retrieves all teams with pagination
func (r *TeamRepository) GetAll(limit, offset int) ([]models.Team, int64, error) {
	var teams []models.Team
	var total int64

	if err := r.db.Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

// GetWithMemberships retrieves a team with all membership rows and their users
func (r *TeamRepository) GetWithMemberships(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.Preload("Memberships").Preload("Memberships.User").First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Update updates a team
func (r *TeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete deletes a team; membership rows cascade at the database level
func (r *TeamRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Team{}, "id = ?", id).Error
}

// AddMembership inserts a membership row. The unique index on
// (team_id, user_id) rejects a concurrent duplicate insert.
func (r *TeamRepository) AddMembership(membership *models.TeamMember) error {
	return r.db.Create(membership).Error
}

// GetMembership retrieves the membership row for a (team, user) pair
func (r *TeamRepository) GetMembership(teamID, userID uuid.UUID) (*models.TeamMember, error) {
	var membership models.TeamMember
	err := r.db.First(&membership, "team_id = ? AND user_id = ?", teamID, userID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetMembershipsByTeam retrieves all membership rows for a team, oldest first
func (r *TeamRepository) GetMembershipsByTeam(teamID uuid.UUID) ([]models.TeamMember, error) {
	var memberships []models.TeamMember
	err := r.db.Preload("User").Where("team_id = ?", teamID).Order("joined_at ASC").Find(&memberships).Error
	return memberships, err
}

// GetMembershipsByUser retrieves all membership rows for a user
func (r *TeamRepository) GetMembershipsByUser(userID uuid.UUID) ([]models.TeamMember, error) {
	var memberships []models.TeamMember
	err := r.db.Where("user_id = ?", userID).Find(&memberships).Error
	return memberships, err
}

// UpdateMembership updates a membership row (role changes)
func (r *TeamRepository) UpdateMembership(membership *models.TeamMember) error {
	return r.db.Save(membership).Error
}

// RemoveMembership deletes the membership row for a (team, user) pair
func (r *TeamRepository) RemoveMembership(teamID, userID uuid.UUID) error {
	return r.db.Delete(&models.TeamMember{}, "team_id = ? AND user_id = ?", teamID, userID).Error
}

// GetMemberCount returns the number of members in a team
func (r *TeamRepository) GetMemberCount(teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}
