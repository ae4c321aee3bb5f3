package repository

import (
	"teamup-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile
func (r *ProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetByUserID retrieves the profile for a user
func (r *ProfileRepository) GetByUserID(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetWithUser retrieves the profile for a user with the user record preloaded
func (r *ProfileRepository) GetWithUser(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetAll retrieves all profiles with pagination
func (r *ProfileRepository) GetAll(limit, offset int) ([]models.Profile, int64, error) {
	var profiles []models.Profile
	var total int64

	if err := r.db.Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// Update updates a profile
func (r *ProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// Delete deletes a profile
func (r *ProfileRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Profile{}, "id = ?", id).Error
}
