package handlers

import (
	"net/http"

	"teamup-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ReconcileHandler exposes the profile/membership divergence scanner
type ReconcileHandler struct {
	reconcileService service.ReconcileServiceInterface
}

// NewReconcileHandler creates a new reconcile handler
func NewReconcileHandler(reconcileService service.ReconcileServiceInterface) *ReconcileHandler {
	return &ReconcileHandler{reconcileService: reconcileService}
}

// Run handles POST /admin/reconcile
// @Summary Scan for profile divergences
// @Description Compare every profile's team references against the membership table and report mismatches
// @Tags admin
// @Produce json
// @Success 200 {object} service.ReconcileReport "Divergence report"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /admin/reconcile [post]
func (h *ReconcileHandler) Run(c *gin.Context) {
	report, err := h.reconcileService.Run()
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
