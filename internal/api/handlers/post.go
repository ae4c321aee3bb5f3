package handlers

import (
	"errors"
	"net/http"

	"teamup-backend/internal/auth"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	postService service.PostServiceInterface
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService service.PostServiceInterface) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create handles POST /posts
// @Summary Create a post
// @Description Create an unattached post authored by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Param post body service.CreatePostRequest true "Post data"
// @Success 201 {object} service.PostResponse "Created post"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	principalID, ok := auth.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req service.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.Create(principalID, &req)
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

	c.JSON(http.StatusCreated, post)
}

// GetByID handles GET /posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} service.PostResponse "Post"
// @Failure 400 {object} map[string]interface{} "Invalid post ID"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{id} [get]
func (h *PostHandler) GetByID(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID format"})
		return
	}

	post, err := h.postService.GetByID(postID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListByTeam handles GET /teams/:id/posts
// @Summary List a team's posts
// @Description Return posts attached to the team, newest first
// @Tags posts
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {array} service.PostResponse "Posts"
// @Failure 400 {object} map[string]interface{} "Invalid team ID"
// @Failure 404 {object} map[string]interface{} "Team not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/posts [get]
func (h *PostHandler) ListByTeam(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team ID format"})
		return
	}

	posts, err := h.postService.ListByTeam(teamID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Attach handles POST /teams/:id/posts/:postId
// @Summary Attach a post to a team
// @Description Attach an unattached post to the team; allowed for team admins and the post's author if a member
// @Tags posts
// @Produce json
// @Param id path string true "Team ID"
// @Param postId path string true "Post ID"
// @Success 200 {array} service.PostResponse "Updated team post list"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Caller may not attach this post"
// @Failure 404 {object} map[string]interface{} "Team or post not found"
// @Failure 409 {object} map[string]interface{} "Post already attached"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/posts/{postId} [post]
func (h *PostHandler) Attach(c *gin.Context) {
	principalID, teamID, postID, ok := h.attachParams(c)
	if !ok {
		return
	}

	posts, err := h.postService.Attach(principalID, teamID, postID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Detach handles DELETE /teams/:id/posts/:postId
// @Summary Detach a post from a team
// @Description Remove a post from the team's feed; the post is deleted, not returned to the unattached pool
// @Tags posts
// @Produce json
// @Param id path string true "Team ID"
// @Param postId path string true "Post ID"
// @Success 200 {array} service.PostResponse "Updated team post list"
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Caller may not detach this post"
// @Failure 404 {object} map[string]interface{} "Team or post not found"
// @Failure 409 {object} map[string]interface{} "Post is not attached to this team"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /teams/{id}/posts/{postId} [delete]
func (h *PostHandler) Detach(c *gin.Context) {
	principalID, teamID, postID, ok := h.attachParams(c)
	if !ok {
		return
	}

	posts, err := h.postService.Detach(principalID, teamID, postID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Like handles POST /posts/:id/likes
// @Summary Like a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} service.PostResponse "Updated post"
// @Failure 400 {object} map[string]interface{} "Invalid post ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 409 {object} map[string]interface{} "Already liked"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{id}/likes [post]
func (h *PostHandler) Like(c *gin.Context) {
	principalID, postID, ok := h.postParams(c)
	if !ok {
		return
	}

	post, err := h.postService.Like(principalID, postID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Unlike handles DELETE /posts/:id/likes
// @Summary Remove a like
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} service.PostResponse "Updated post"
// @Failure 400 {object} map[string]interface{} "Invalid post ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 409 {object} map[string]interface{} "Post was not liked"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{id}/likes [delete]
func (h *PostHandler) Unlike(c *gin.Context) {
	principalID, postID, ok := h.postParams(c)
	if !ok {
		return
	}

	post, err := h.postService.Unlike(principalID, postID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// AddComment handles POST /posts/:id/comments
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body service.CommentRequest true "Comment text"
// @Success 200 {object} service.PostResponse "Updated post"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	principalID, postID, ok := h.postParams(c)
	if !ok {
		return
	}

	var req service.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.AddComment(principalID, postID, &req)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) postParams(c *gin.Context) (principalID, postID uuid.UUID, ok bool) {
	principalID, authed := auth.PrincipalID(c)
	if !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return uuid.Nil, uuid.Nil, false
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID format"})
		return uuid.Nil, uuid.Nil, false
	}

	return principalID, postID, true
}

func (h *PostHandler) attachParams(c *gin.Context) (principalID, teamID, postID uuid.UUID, ok bool) {
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

	postID, err = uuid.Parse(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID format"})
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	return principalID, teamID, postID, true
}

// respondPostError maps post service errors onto HTTP statuses.
func (h *PostHandler) respondPostError(c *gin.Context, err error) {
	switch {
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPostAttached),
		errors.Is(err, apperrors.ErrPostOwnedByTeam),
		errors.Is(err, apperrors.ErrPostNotInTeam),
		errors.Is(err, apperrors.ErrAlreadyLiked),
		errors.Is(err, apperrors.ErrNotLiked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		respondInternalError(c, err)
	}
}
