package service

import (
	"errors"
	"fmt"

	"teamup-backend/internal/database/models"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/logger"
	"teamup-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamService handles team lifecycle and membership. Every mutation loads
// the team aggregate fresh, consults the policy module, applies the change,
// and persists the team side before the member's profile back-reference.
type TeamService struct {
	teamRepo    repository.TeamRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	postRepo    repository.PostRepositoryInterface
	validator   *validator.Validate
	log         *logger.Logger
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo repository.TeamRepositoryInterface, userRepo repository.UserRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, postRepo repository.PostRepositoryInterface, validator *validator.Validate) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		validator:   validator,
		log:         logger.New(),
	}
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// MemberResponse represents one team member with their role
type MemberResponse struct {
	UserID    uuid.UUID       `json:"user_id"`
	Name      string          `json:"name"`
	AvatarURL string          `json:"avatar_url,omitempty"`
	Role      models.TeamRole `json:"role"`
	JoinedAt  string          `json:"joined_at"`
}

// TeamResponse represents the response for team operations. Owners, admins
// and members are rendered from the ranked membership rows: every admin
// appears in members, every owner in both admins and members, matching the
// intended owner ⊆ admins ⊆ members hierarchy on the wire.
type TeamResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Owners      []MemberResponse `json:"owners"`
	Admins      []MemberResponse `json:"admins"`
	Members     []MemberResponse `json:"members"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

// TeamListResponse represents a paginated list of teams
type TeamListResponse struct {
	Teams    []TeamResponse `json:"teams"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// RemoveMemberResponse is deliberately asymmetric, matching the API
// contract: an admin removing someone gets the updated member list, a
// member removing themselves gets a plain confirmation.
type RemoveMemberResponse struct {
	Message string           `json:"message,omitempty"`
	Members []MemberResponse `json:"members,omitempty"`
}

// Create creates a new team. The creating principal becomes the sole owner
// (and therefore admin and member, by rank) and their profile gains a
// prepended team back-reference.
func (s *TeamService) Create(principalID uuid.UUID, req *CreateTeamRequest) (*TeamResponse, error) {
	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	// The creator must exist and have a profile to hold the back-reference
	if _, err := s.userRepo.GetByID(principalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	profile, err := s.profileRepo.GetByUserID(principalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	// Team names are globally unique, case-sensitive exact match
	existing, err := s.teamRepo.GetByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing team by name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrTeamExists
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	membership := &models.TeamMember{
		TeamID: team.ID,
		UserID: principalID,
		Role:   models.TeamRoleOwner,
	}
	if err := s.teamRepo.AddMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	if err := s.prependTeamRef(profile, team); err != nil {
		// The team exists but the creator's profile missed its
		// back-reference. There is no cross-document transaction to roll
		// back; log enough to reconcile and surface an internal error.
		s.log.WithFields(map[string]interface{}{
			"team_id": team.ID,
			"user_id": principalID,
		}).Error("team created but profile back-reference write failed; reconciliation required")
		return nil, fmt.Errorf("failed to update creator profile: %w", err)
	}

	return s.toResponse(team)
}

// Delete deletes a team and every post attached to it. Owner-only.
// Member profiles keep their stale team back-references; the reconciler
// reports them (known limitation of the original design, preserved).
func (s *TeamService) Delete(principalID, teamID uuid.UUID) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team: %w", err)
	}

	snap, err := s.loadSnapshot(team.ID)
	if err != nil {
		return err
	}
	if err := Evaluate(ActionTeamDelete, snap, principalID, uuid.Nil).Err(); err != nil {
		return err
	}

	if err := s.postRepo.DeleteByTeamID(team.ID); err != nil {
		return fmt.Errorf("failed to delete team posts: %w", err)
	}
	if err := s.teamRepo.Delete(team.ID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// GetByID retrieves a team by ID
func (s *TeamService) GetByID(teamID uuid.UUID) (*TeamResponse, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return s.toResponse(team)
}

// List retrieves all teams with pagination
func (s *TeamService) List(page, pageSize int) (*TeamListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	teams, total, err := s.teamRepo.GetAll(pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	responses := make([]TeamResponse, len(teams))
	for i, team := range teams {
		resp, err := s.toResponse(&team)
		if err != nil {
			return nil, err
		}
		responses[i] = *resp
	}

	return &TeamListResponse{
		Teams:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// AddMember adds a user to a team as a plain member. Admin-only; users
// cannot add themselves. The target's profile gains a prepended team
// back-reference after the membership row is written.
func (s *TeamService) AddMember(principalID, teamID, targetUserID uuid.UUID) ([]MemberResponse, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if _, err := s.userRepo.GetByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify target user: %w", err)
	}
	profile, err := s.profileRepo.GetByUserID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load target profile: %w", err)
	}

	snap, err := s.loadSnapshot(team.ID)
	if err != nil {
		return nil, err
	}
	if err := Evaluate(ActionMemberAdd, snap, principalID, targetUserID).Err(); err != nil {
		return nil, err
	}
	if snap.IsMember(targetUserID) {
		return nil, apperrors.ErrMembershipExists
	}

	// Best-effort pre-check above; the unique (team_id, user_id) index is
	// what actually guarantees no duplicate under concurrent adds.
	membership := &models.TeamMember{
		TeamID: team.ID,
		UserID: targetUserID,
		Role:   models.TeamRoleMember,
	}
	if err := s.teamRepo.AddMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to add membership: %w", err)
	}

	if err := s.prependTeamRef(profile, team); err != nil {
		s.log.WithFields(map[string]interface{}{
			"team_id": team.ID,
			"user_id": targetUserID,
		}).Error("membership added but profile back-reference write failed; reconciliation required")
		return nil, fmt.Errorf("failed to update member profile: %w", err)
	}

	return s.memberList(team.ID)
}

// RemoveMember removes a user from a team. Admins can remove anyone below
// owner tier; owners are removable only by owners; any member can remove
// themselves. The sole remaining owner cannot be removed. The response shape
// depends on who asked (see RemoveMemberResponse).
func (s *TeamService) RemoveMember(principalID, teamID, targetUserID uuid.UUID) (*RemoveMemberResponse, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if _, err := s.userRepo.GetByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify target user: %w", err)
	}
	profile, err := s.profileRepo.GetByUserID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load target profile: %w", err)
	}

	snap, err := s.loadSnapshot(team.ID)
	if err != nil {
		return nil, err
	}
	if err := Evaluate(ActionMemberRemove, snap, principalID, targetUserID).Err(); err != nil {
		return nil, err
	}
	if !snap.IsMember(targetUserID) {
		return nil, apperrors.ErrNotAMember
	}
	if snap.IsOwner(targetUserID) && snap.OwnerCount() == 1 {
		// Removing the sole owner would strand the team with nobody
		// entitled to delete it.
		return nil, apperrors.ErrLastOwner
	}

	if err := s.teamRepo.RemoveMembership(team.ID, targetUserID); err != nil {
		return nil, fmt.Errorf("failed to remove membership: %w", err)
	}

	if err := s.removeTeamRef(profile, team.ID); err != nil {
		s.log.WithFields(map[string]interface{}{
			"team_id": team.ID,
			"user_id": targetUserID,
		}).Error("membership removed but profile back-reference cleanup failed; reconciliation required")
		return nil, fmt.Errorf("failed to update member profile: %w", err)
	}

	if snap.IsAdmin(principalID) {
		members, err := s.memberList(team.ID)
		if err != nil {
			return nil, err
		}
		return &RemoveMemberResponse{Members: members}, nil
	}
	return &RemoveMemberResponse{Message: "left team"}, nil
}

// AddAdmin promotes an existing member to admin. Admin-only; the target
// must already be a member.
func (s *TeamService) AddAdmin(principalID, teamID, targetUserID uuid.UUID) ([]MemberResponse, error) {
	snap, membership, err := s.loadMembershipFor(teamID, targetUserID)
	if err != nil {
		return nil, err
	}
	if err := Evaluate(ActionAdminAdd, snap, principalID, targetUserID).Err(); err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperrors.ErrNotAMember
	}
	if membership.Role.AtLeast(models.TeamRoleAdmin) {
		return nil, apperrors.ErrAlreadyAdmin
	}

	membership.Role = models.TeamRoleAdmin
	if err := s.teamRepo.UpdateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	return s.adminList(teamID)
}

// RemoveAdmin demotes an admin back to plain member. Admin-only; demoting
// an owner-tier admin additionally requires the principal to be an owner,
// and strips owner rank (the ranked role model has no owner-who-is-not-admin
// state). The sole remaining owner cannot be demoted.
func (s *TeamService) RemoveAdmin(principalID, teamID, targetUserID uuid.UUID) ([]MemberResponse, error) {
	snap, membership, err := s.loadMembershipFor(teamID, targetUserID)
	if err != nil {
		return nil, err
	}
	if err := Evaluate(ActionAdminRemove, snap, principalID, targetUserID).Err(); err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperrors.ErrNotAMember
	}
	if !membership.Role.AtLeast(models.TeamRoleAdmin) {
		return nil, apperrors.ErrNotAnAdmin
	}
	if snap.IsOwner(targetUserID) && snap.OwnerCount() == 1 {
		// Demotion strips owner rank, and a team must keep at least one
		// owner so it stays deletable.
		return nil, apperrors.ErrLastOwner
	}

	membership.Role = models.TeamRoleMember
	if err := s.teamRepo.UpdateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	return s.adminList(teamID)
}

// ListMembers retrieves every member of a team, oldest first
func (s *TeamService) ListMembers(teamID uuid.UUID) ([]MemberResponse, error) {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return s.memberList(teamID)
}

// GetMember retrieves one member of a team
func (s *TeamService) GetMember(teamID, userID uuid.UUID) (*MemberResponse, error) {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	membership, err := s.teamRepo.GetMembership(teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	resp := toMemberResponse(membership, user)
	return &resp, nil
}

// loadSnapshot loads the team's membership rows into a fresh policy snapshot
func (s *TeamService) loadSnapshot(teamID uuid.UUID) (*TeamSnapshot, error) {
	memberships, err := s.teamRepo.GetMembershipsByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	return NewTeamSnapshot(teamID, memberships), nil
}

// loadMembershipFor loads the team, its snapshot, and the target's
// membership row (nil when the target is not a member)
func (s *TeamService) loadMembershipFor(teamID, targetUserID uuid.UUID) (*TeamSnapshot, *models.TeamMember, error) {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrTeamNotFound
		}
		return nil, nil, fmt.Errorf("failed to get team: %w", err)
	}
	if _, err := s.userRepo.GetByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to verify target user: %w", err)
	}
	snap, err := s.loadSnapshot(teamID)
	if err != nil {
		return nil, nil, err
	}
	membership, err := s.teamRepo.GetMembership(teamID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snap, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return snap, membership, nil
}

// prependTeamRef adds {team_id, name} to the front of the profile's team
// back-references (most-recent-first ordering)
func (s *TeamService) prependTeamRef(profile *models.Profile, team *models.Team) error {
	refs, err := decodeTeamRefs(profile.Teams)
	if err != nil {
		return fmt.Errorf("failed to parse profile teams: %w", err)
	}
	refs = append([]TeamRef{{TeamID: team.ID, Name: team.Name}}, refs...)
	encoded, err := encodeTeamRefs(refs)
	if err != nil {
		return fmt.Errorf("failed to marshal profile teams: %w", err)
	}
	profile.Teams = encoded
	return s.profileRepo.Update(profile)
}

// removeTeamRef drops the matching {team_id} entry from the profile's team
// back-references
func (s *TeamService) removeTeamRef(profile *models.Profile, teamID uuid.UUID) error {
	refs, err := decodeTeamRefs(profile.Teams)
	if err != nil {
		return fmt.Errorf("failed to parse profile teams: %w", err)
	}
	kept := make([]TeamRef, 0, len(refs))
	for _, ref := range refs {
		if ref.TeamID != teamID {
			kept = append(kept, ref)
		}
	}
	encoded, err := encodeTeamRefs(kept)
	if err != nil {
		return fmt.Errorf("failed to marshal profile teams: %w", err)
	}
	profile.Teams = encoded
	return s.profileRepo.Update(profile)
}

func (s *TeamService) memberList(teamID uuid.UUID) ([]MemberResponse, error) {
	memberships, err := s.teamRepo.GetMembershipsByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	members := make([]MemberResponse, len(memberships))
	for i, m := range memberships {
		members[i] = toMemberResponse(&m, &m.User)
	}
	return members, nil
}

func (s *TeamService) adminList(teamID uuid.UUID) ([]MemberResponse, error) {
	members, err := s.memberList(teamID)
	if err != nil {
		return nil, err
	}
	admins := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		if m.Role.AtLeast(models.TeamRoleAdmin) {
			admins = append(admins, m)
		}
	}
	return admins, nil
}

// toResponse converts a team model to a response with its role lists
func (s *TeamService) toResponse(team *models.Team) (*TeamResponse, error) {
	members, err := s.memberList(team.ID)
	if err != nil {
		return nil, err
	}

	owners := make([]MemberResponse, 0, 1)
	admins := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		if m.Role.AtLeast(models.TeamRoleOwner) {
			owners = append(owners, m)
		}
		if m.Role.AtLeast(models.TeamRoleAdmin) {
			admins = append(admins, m)
		}
	}

	return &TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		Owners:      owners,
		Admins:      admins,
		Members:     members,
		CreatedAt:   team.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   team.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

func toMemberResponse(m *models.TeamMember, user *models.User) MemberResponse {
	resp := MemberResponse{
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user != nil {
		resp.Name = user.FirstName + " " + user.LastName
		resp.AvatarURL = user.AvatarURL
	}
	return resp
}
