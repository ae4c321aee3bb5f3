package service

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"teamup-backend/internal/database/models"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration and credential checks
type UserService struct {
	userRepo    repository.UserRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	validator   *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, validator *validator.Validate) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		validator:   validator,
	}
}

// RegisterRequest represents the request to register a new account
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents the response for user operations
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// Register creates a user with a bcrypt password hash, a gravatar-derived
// avatar, and an empty profile ready to hold team back-references.
func (s *UserService) Register(req *RegisterRequest) (*UserResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	existing, err := s.userRepo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		AvatarURL:    gravatarURL(req.Email),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &models.Profile{UserID: user.ID}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return toUserResponse(user), nil
}

// Authenticate verifies an email/password pair and returns the user.
// Both unknown-email and wrong-password collapse into the same
// invalid-credentials error.
func (s *UserService) Authenticate(req *LoginRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return toUserResponse(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserResponse(user), nil
}

// gravatarURL derives the avatar URL the way the original client expects:
// md5 of the trimmed, lowercased email, 200px, PG-rated, identicon fallback.
func gravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
