package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"teamup-backend/internal/auth"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamHandler handles HTTP requests for teams and memberships
type TeamHandler struct {
	teamService service.TeamServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// Create handles POST /teams
// @Summary Create a team
// @Description Create a team with the caller as its sole owner
// @Tags teams
// @Accept json
// @Produce json
// @Param team body service.CreateTeamRequest true "Team data"
// @Success 201 {object} service.TeamResponse "Created team"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 409 {object} map[string]interface{} "Team name already taken"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	principalID, ok := auth.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Create(principalID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// Delete handles DELETE /teams/:id
// @Summary Delete a team
// @Description Delete a team and its posts; only an owner may do this
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} map[string]interface{} "Confirmation message"
// @Failure 400 {object} map[string]interface{} "Invalid team ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Caller is not an owner"
// @Failure 404 {object} map[string]interface{} "Team not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	principalID, ok := auth.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID format"})
		return
	}

	if err := h.teamService.Delete(principalID, teamID); err != nil {
		h.respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}

// GetByID handles GET /teams/:id
// @Summary Get a team
// @Description Return a team with its owner, admin and member lists
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} service.TeamResponse "Team"
// @Failure 400 {object} map[string]interface{} "Invalid team ID"
// @Failure 404 {object} map[string]interface{} "Team not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id} [get]
func (h *TeamHandler) GetByID(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID format"})
		return
	}

	team, err := h.teamService.GetByID(teamID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// List handles GET /teams
// @Summary List teams
// @Description Return teams ordered newest first, paginated
// @Tags teams
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.TeamListResponse "Teams"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	teams, err := h.teamService.List(page, pageSize)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// AddMember handles POST /teams/:id/members/:userId
// @Summary Add a member
// @Description Add a user to the team; only admins may do this
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Param userId path string true "User ID"
// @Success 200 {array} service.MemberResponse "Updated member list"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Caller lacks admin rights"
// @Failure 404 {object} map[string]interface{} "Team or user not found"
// @Failure 409 {object} map[string]interface{} "User already a member"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/members/{userId} [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	principalID, teamID, targetID, ok := h.membershipParams(c)
	if !ok {
		return
	}

	members, err := h.teamService.AddMember(principalID, teamID, targetID)
	if err != nil {
		h.respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// RemoveMember handles DELETE /teams/:id/members/:userId
// @Summary Remove a member
// @Description Remove a user from the team; admins remove others, anyone may remove themselves
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Param userId path string true "User ID"
// @Success 200 {object} service.RemoveMemberResponse "Member list for admins, confirmation for self-removal"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Caller may not remove this member"
// @Failure 404 {object} map[string]interface{} "Team or user not found"
// @Failure 409 {object} map[string]interface{} "User is not a member"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/members/{userId} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	principalID, teamID, targetID, ok := h.membershipParams(c)
	if !ok {
		return
	}

	resp, err := h.teamService.RemoveMember(principalID, teamID, targetID)
	if err != nil {
		h.respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddAdmin handles POST /teams/:id/admins/:userId
// @Summary Promote a member to admin
// @Description Grant admin rights to an existing member; only admins may do this
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Param userId path string true "User ID"
// @Success 200 {array} service.MemberResponse "Updated admin list"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Caller lacks admin rights"
// @Failure 404 {object} map[string]interface{} "Team or user not found"
// @Failure 409 {object} map[string]interface{} "User not a member or already an admin"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/admins/{userId} [post]
func (h *TeamHandler) AddAdmin(c *gin.Context) {
	principalID, teamID, targetID, ok := h.membershipParams(c)
	if !ok {
		return
	}

	admins, err := h.teamService.AddAdmin(principalID, teamID, targetID)
	if err != nil {
		h.respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, admins)
}

// RemoveAdmin handles DELETE /teams/:id/admins/:userId
// @Summary Demote an admin
// @Description Revoke admin rights; demoting an owner requires an owner caller
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Param userId path string true "User ID"
// @Success 200 {array} service.MemberResponse "Updated admin list"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Caller may not demote this admin"
// @Failure 404 {object} map[string]interface{} "Team or user not found"
// @Failure 409 {object} map[string]interface{} "User is not an admin"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/admins/{userId} [delete]
func (h *TeamHandler) RemoveAdmin(c *gin.Context) {
	principalID, teamID, targetID, ok := h.membershipParams(c)
	if !ok {
		return
	}

	admins, err := h.teamService.RemoveAdmin(principalID, teamID, targetID)
	if err != nil {
		h.respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, admins)
}

// ListMembers handles GET /teams/:id/members
// @Summary List team members
// @Description Return the team's members ordered by join time
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {array} service.MemberResponse "Members"
// @Failure 400 {object} map[string]interface{} "Invalid team ID"
// @Failure 404 {object} map[string]interface{} "Team not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/members [get]
func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID format"})
		return
	}

	members, err := h.teamService.ListMembers(teamID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// GetMember handles GET /teams/:id/members/:userId
// @Summary Get a team member
// @Description Return a single member with their role in the team
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Param userId path string true "User ID"
// @Success 200 {object} service.MemberResponse "Member"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]interface{} "Team or membership not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/members/{userId} [get]
func (h *TeamHandler) GetMember(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID format"})
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID format"})
		return
	}

	member, err := h.teamService.GetMember(teamID, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// membershipParams extracts the principal and the team/user path parameters,
// writing the error response itself when any of them is missing or malformed.
func (h *TeamHandler) membershipParams(c *gin.Context) (principalID, teamID, targetID uuid.UUID, ok bool) {
	principalID, authed := auth.PrincipalID(c)
	if !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID format"})
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	targetID, err = uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID format"})
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	return principalID, teamID, targetID, true
}

// respondMembershipError maps membership service errors onto HTTP statuses.
func (h *TeamHandler) respondMembershipError(c *gin.Context, err error) {
	switch {
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrMembershipExists),
		errors.Is(err, apperrors.ErrNotAMember),
		errors.Is(err, apperrors.ErrAlreadyAdmin),
		errors.Is(err, apperrors.ErrNotAnAdmin),
		errors.Is(err, apperrors.ErrLastOwner):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		respondInternalError(c, err)
	}
}
