package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"teamup-backend/internal/database/models"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records one user's like on a post
type Like struct {
	UserID uuid.UUID `json:"user_id"`
}

// Comment denormalizes the commenter's name and avatar at comment time so
// the thread survives commenter deletion
type Comment struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`
	Date   time.Time `json:"date"`
}

// PostService handles posts and their attachment to teams
type PostService struct {
	postRepo  repository.PostRepositoryInterface
	teamRepo  repository.TeamRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepositoryInterface, teamRepo repository.TeamRepositoryInterface, userRepo repository.UserRepositoryInterface, validator *validator.Validate) *PostService {
	return &PostService{
		postRepo:  postRepo,
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		validator: validator,
	}
}

// CreatePostRequest represents the request to create a post
type CreatePostRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// CommentRequest represents the request to comment on a post
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// PostResponse represents the response for post operations
type PostResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	TeamID       *uuid.UUID `json:"team_id,omitempty"`
	Text         string     `json:"text"`
	AuthorName   string     `json:"author_name,omitempty"`
	AuthorAvatar string     `json:"author_avatar,omitempty"`
	Likes        []Like     `json:"likes"`
	Comments     []Comment  `json:"comments"`
	CreatedAt    string     `json:"created_at"`
}

// Create creates a post authored by the principal, denormalizing the
// author's name and avatar onto the record
func (s *PostService) Create(principalID uuid.UUID, req *CreatePostRequest) (*PostResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	author, err := s.userRepo.GetByID(principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	post := &models.Post{
		UserID:       principalID,
		Text:         req.Text,
		AuthorName:   author.FirstName + " " + author.LastName,
		AuthorAvatar: author.AvatarURL,
		Likes:        json.RawMessage("[]"),
		Comments:     json.RawMessage("[]"),
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return toPostResponse(post)
}

// GetByID retrieves a post by ID
func (s *PostService) GetByID(id uuid.UUID) (*PostResponse, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return toPostResponse(post)
}

// ListByTeam retrieves every post attached to a team, newest first
func (s *PostService) ListByTeam(teamID uuid.UUID) ([]PostResponse, error) {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	posts, err := s.postRepo.GetByTeamID(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team posts: %w", err)
	}

	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		resp, err := toPostResponse(&post)
		if err != nil {
			return nil, err
		}
		responses[i] = *resp
	}
	return responses, nil
}

// Attach attaches a post to a team. The principal must be a team member and
// either a team admin or the post's author; a post belongs to at most one
// team at a time, enforced here at attach time.
func (s *PostService) Attach(principalID, teamID, postID uuid.UUID) ([]PostResponse, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	snap, err := s.loadSnapshot(team.ID)
	if err != nil {
		return nil, err
	}
	if err := Evaluate(ActionPostAttach, snap, principalID, post.UserID).Err(); err != nil {
		return nil, err
	}

	if post.TeamID != nil {
		if *post.TeamID == team.ID {
			return nil, apperrors.ErrPostAttached
		}
		return nil, apperrors.ErrPostOwnedByTeam
	}

	post.TeamID = &team.ID
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to attach post: %w", err)
	}

	return s.ListByTeam(team.ID)
}

// Detach removes a post from a team and hard-deletes the post record.
// Detaching destroys the post; this mirrors the reference behavior and is
// intentional, not an unlink.
func (s *PostService) Detach(principalID, teamID, postID uuid.UUID) ([]PostResponse, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	snap, err := s.loadSnapshot(team.ID)
	if err != nil {
		return nil, err
	}
	if err := Evaluate(ActionPostDetach, snap, principalID, post.UserID).Err(); err != nil {
		return nil, err
	}

	if post.TeamID == nil || *post.TeamID != team.ID {
		return nil, apperrors.ErrPostNotInTeam
	}

	if err := s.postRepo.Delete(post.ID); err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	return s.ListByTeam(team.ID)
}

// Like records the principal's like on a post; liking twice is a conflict
func (s *PostService) Like(principalID, postID uuid.UUID) (*PostResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	likes, err := decodeLikes(post.Likes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse likes: %w", err)
	}
	for _, like := range likes {
		if like.UserID == principalID {
			return nil, apperrors.ErrAlreadyLiked
		}
	}
	likes = append(likes, Like{UserID: principalID})

	likesJSON, err := json.Marshal(likes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal likes: %w", err)
	}
	post.Likes = likesJSON

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return toPostResponse(post)
}

// Unlike removes the principal's like from a post
func (s *PostService) Unlike(principalID, postID uuid.UUID) (*PostResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	likes, err := decodeLikes(post.Likes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse likes: %w", err)
	}
	kept := make([]Like, 0, len(likes))
	found := false
	for _, like := range likes {
		if like.UserID == principalID {
			found = true
			continue
		}
		kept = append(kept, like)
	}
	if !found {
		return nil, apperrors.ErrNotLiked
	}

	likesJSON, err := json.Marshal(kept)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal likes: %w", err)
	}
	post.Likes = likesJSON

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return toPostResponse(post)
}

// AddComment appends a comment to a post, denormalizing the commenter
func (s *PostService) AddComment(principalID, postID uuid.UUID, req *CommentRequest) (*PostResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	commenter, err := s.userRepo.GetByID(principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get commenter: %w", err)
	}

	comments, err := decodeComments(post.Comments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse comments: %w", err)
	}
	comments = append([]Comment{{
		ID:     uuid.New(),
		UserID: principalID,
		Text:   req.Text,
		Name:   commenter.FirstName + " " + commenter.LastName,
		Avatar: commenter.AvatarURL,
		Date:   time.Now().UTC(),
	}}, comments...)

	commentsJSON, err := json.Marshal(comments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comments: %w", err)
	}
	post.Comments = commentsJSON

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return toPostResponse(post)
}

// loadSnapshot loads the team's membership rows into a fresh policy snapshot
func (s *PostService) loadSnapshot(teamID uuid.UUID) (*TeamSnapshot, error) {
	memberships, err := s.teamRepo.GetMembershipsByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	return NewTeamSnapshot(teamID, memberships), nil
}

func decodeLikes(raw json.RawMessage) ([]Like, error) {
	if len(raw) == 0 {
		return []Like{}, nil
	}
	var likes []Like
	if err := json.Unmarshal(raw, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

func decodeComments(raw json.RawMessage) ([]Comment, error) {
	if len(raw) == 0 {
		return []Comment{}, nil
	}
	var comments []Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func toPostResponse(post *models.Post) (*PostResponse, error) {
	likes, err := decodeLikes(post.Likes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse likes: %w", err)
	}
	comments, err := decodeComments(post.Comments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse comments: %w", err)
	}

	return &PostResponse{
		ID:           post.ID,
		UserID:       post.UserID,
		TeamID:       post.TeamID,
		Text:         post.Text,
		AuthorName:   post.AuthorName,
		AuthorAvatar: post.AuthorAvatar,
		Likes:        likes,
		Comments:     comments,
		CreatedAt:    post.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
