package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"teamup-backend/internal/database/models"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamRef is one denormalized team back-reference on a profile
type TeamRef struct {
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
}

// SocialLinks holds a profile's social media URLs
type SocialLinks struct {
	GitHub    string `json:"github,omitempty" validate:"omitempty,url"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	YouTube   string `json:"youtube,omitempty" validate:"omitempty,url"`
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
}

// ProfileService handles business logic for profiles
type ProfileService struct {
	profileRepo repository.ProfileRepositoryInterface
	validator   *validator.Validate
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepositoryInterface, validator *validator.Validate) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		validator:   validator,
	}
}

// UpdateProfileRequest represents the request to update the caller's profile
type UpdateProfileRequest struct {
	Location string       `json:"location" validate:"max=200"`
	Skills   []string     `json:"skills" validate:"dive,min=1,max=50"`
	Social   *SocialLinks `json:"social,omitempty"`
}

// ProfileResponse represents the response for profile operations
type ProfileResponse struct {
	UserID    uuid.UUID    `json:"user_id"`
	Name      string       `json:"name,omitempty"`
	AvatarURL string       `json:"avatar_url,omitempty"`
	Location  string       `json:"location,omitempty"`
	Skills    []string     `json:"skills"`
	Social    *SocialLinks `json:"social,omitempty"`
	Teams     []TeamRef    `json:"teams"`
	UpdatedAt string       `json:"updated_at"`
}

// GetByUserID retrieves a profile with its user details
func (s *ProfileService) GetByUserID(userID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.profileRepo.GetWithUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return toProfileResponse(profile)
}

// Update updates the mutable fields of the caller's profile. Team
// back-references are owned by the membership flow and cannot be edited here.
func (s *ProfileService) Update(userID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	profile, err := s.profileRepo.GetWithUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Location = req.Location

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	profile.Skills = skillsJSON

	if req.Social != nil {
		socialJSON, err := json.Marshal(req.Social)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal social links: %w", err)
		}
		profile.Social = socialJSON
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return toProfileResponse(profile)
}

// decodeTeamRefs parses the JSONB team back-reference list; an empty column
// decodes to an empty list
func decodeTeamRefs(raw json.RawMessage) ([]TeamRef, error) {
	if len(raw) == 0 {
		return []TeamRef{}, nil
	}
	var refs []TeamRef
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// encodeTeamRefs renders the back-reference list back to JSONB
func encodeTeamRefs(refs []TeamRef) (json.RawMessage, error) {
	if len(refs) == 0 {
		return json.RawMessage("[]"), nil
	}
	return json.Marshal(refs)
}

func toProfileResponse(profile *models.Profile) (*ProfileResponse, error) {
	var skills []string
	if len(profile.Skills) > 0 {
		if err := json.Unmarshal(profile.Skills, &skills); err != nil {
			return nil, fmt.Errorf("failed to parse skills: %w", err)
		}
	}
	if skills == nil {
		skills = []string{}
	}

	var social *SocialLinks
	if len(profile.Social) > 0 {
		social = &SocialLinks{}
		if err := json.Unmarshal(profile.Social, social); err != nil {
			return nil, fmt.Errorf("failed to parse social links: %w", err)
		}
	}

	teams, err := decodeTeamRefs(profile.Teams)
	if err != nil {
		return nil, fmt.Errorf("failed to parse teams: %w", err)
	}

	resp := &ProfileResponse{
		UserID:    profile.UserID,
		Location:  profile.Location,
		Skills:    skills,
		Social:    social,
		Teams:     teams,
		UpdatedAt: profile.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if profile.User.ID != uuid.Nil {
		resp.Name = profile.User.FirstName + " " + profile.User.LastName
		resp.AvatarURL = profile.User.AvatarURL
	}
	return resp, nil
}
