package service

import (
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	Register(req *RegisterRequest) (*UserResponse, error)
	Authenticate(req *LoginRequest) (*UserResponse, error)
	GetByID(id uuid.UUID) (*UserResponse, error)
}

// ProfileServiceInterface defines the interface for profile service
type ProfileServiceInterface interface {
	GetByUserID(userID uuid.UUID) (*ProfileResponse, error)
	Update(userID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error)
}

// TeamServiceInterface defines the interface for team service
type TeamServiceInterface interface {
	Create(principalID uuid.UUID, req *CreateTeamRequest) (*TeamResponse, error)
	Delete(principalID, teamID uuid.UUID) error
	GetByID(teamID uuid.UUID) (*TeamResponse, error)
	List(page, pageSize int) (*TeamListResponse, error)
	AddMember(principalID, teamID, targetUserID uuid.UUID) ([]MemberResponse, error)
	RemoveMember(principalID, teamID, targetUserID uuid.UUID) (*RemoveMemberResponse, error)
	AddAdmin(principalID, teamID, targetUserID uuid.UUID) ([]MemberResponse, error)
	RemoveAdmin(principalID, teamID, targetUserID uuid.UUID) ([]MemberResponse, error)
	ListMembers(teamID uuid.UUID) ([]MemberResponse, error)
	GetMember(teamID, userID uuid.UUID) (*MemberResponse, error)
}

// PostServiceInterface defines the interface for post service
type PostServiceInterface interface {
	Create(principalID uuid.UUID, req *CreatePostRequest) (*PostResponse, error)
	GetByID(id uuid.UUID) (*PostResponse, error)
	ListByTeam(teamID uuid.UUID) ([]PostResponse, error)
	Attach(principalID, teamID, postID uuid.UUID) ([]PostResponse, error)
	Detach(principalID, teamID, postID uuid.UUID) ([]PostResponse, error)
	Like(principalID, postID uuid.UUID) (*PostResponse, error)
	Unlike(principalID, postID uuid.UUID) (*PostResponse, error)
	AddComment(principalID, postID uuid.UUID, req *CommentRequest) (*PostResponse, error)
}

// ReconcileServiceInterface defines the interface for the divergence scanner
type ReconcileServiceInterface interface {
	Run() (*ReconcileReport, error)
}
