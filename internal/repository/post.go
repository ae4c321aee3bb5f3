package repository

import (
	"teamup-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create creates a new post
func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByTeamID retrieves all posts attached to a team, newest first
func (r *PostRepository) GetByTeamID(teamID uuid.UUID) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("team_id = ?", teamID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// GetByUserID retrieves all posts authored by a user, newest first
func (r *PostRepository) GetByUserID(userID uuid.UUID) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// Update updates a post
func (r *PostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete deletes a post
func (r *PostRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Post{}, "id = ?", id).Error
}

// DeleteByTeamID deletes every post attached to a team
func (r *PostRepository) DeleteByTeamID(teamID uuid.UUID) error {
	return r.db.Delete(&models.Post{}, "team_id = ?", teamID).Error
}
