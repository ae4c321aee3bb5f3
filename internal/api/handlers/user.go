package handlers

import (
	"errors"
	"net/http"

	"teamup-backend/internal/auth"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for registration and login
type UserHandler struct {
	userService service.UserServiceInterface
	authService *auth.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserServiceInterface, authService *auth.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// Register handles POST /users
// @Summary Register a new account
// @Description Create a user with a hashed password and an empty profile, returning a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{} "Token and created user"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	token, err := h.authService.IssueToken(user.ID, user.Email)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login handles POST /auth/login
// @Summary Authenticate
// @Description Verify email and password and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Token"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Authenticate(&req)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	token, err := h.authService.IssueToken(user.ID, user.Email)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me handles GET /auth/me
// @Summary Current user
// @Description Return the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} service.UserResponse "Current user"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	principalID, ok := auth.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.userService.GetByID(principalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
