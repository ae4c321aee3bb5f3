package handlers

import (
	"net/http"

	"teamup-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

var log = logger.New()

// respondInternalError logs the underlying failure server-side and returns
// an opaque 500 body. Storage and other backend detail never reaches the
// client.
func respondInternalError(c *gin.Context, err error) {
	log.WithFields(map[string]interface{}{
		"error":      err.Error(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("request_id"),
	}).Error("request failed")

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
