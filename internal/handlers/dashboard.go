package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/middleware"
	"github.com/supplychainlens/monitoring-api/internal/services"
)

// DashboardHandler serves per-organization summary figures.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the organization dashboard. Membership was already
// checked by RequireOrganizationAccess.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	summary, err := h.dashboardService.GetSummary(org.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, summary)
}
