package handlers

import (
	"net/http"

	"teamup-backend/internal/auth"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileHandler handles HTTP requests for profiles
type ProfileHandler struct {
	profileService service.ProfileServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService service.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetByUserID handles GET /profiles/:userId
// @Summary Get a profile
// @Description Return the profile for a user, including skills, social links and team references
// @Tags profiles
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} service.ProfileResponse "Profile"
// @Failure 400 {object} map[string]interface{} "Invalid user ID"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /profiles/{userId} [get]
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID format"})
		return
	}

	profile, err := h.profileService.GetByUserID(userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetOwn handles GET /profiles/me
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Success 200 {object} service.ProfileResponse "Profile"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /profiles/me [get]
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	principalID, ok := auth.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	profile, err := h.profileService.GetByUserID(principalID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateOwn handles PUT /profiles/me
// @Summary Update own profile
// @Description Update the authenticated user's location, skills and social links
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body service.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} service.ProfileResponse "Updated profile"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /profiles/me [put]
func (h *ProfileHandler) UpdateOwn(c *gin.Context) {
	principalID, ok := auth.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.Update(principalID, &req)
	if err != nil {
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

	c.JSON(http.StatusOK, profile)
}
