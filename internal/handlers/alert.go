package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supplychainlens/monitoring-api/internal/dto"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/middleware"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/repository"
	"github.com/supplychainlens/monitoring-api/internal/services"
	"github.com/supplychainlens/monitoring-api/internal/utils"
)

// AlertHandler coordinates alert HTTP handlers.
type AlertHandler struct {
	alertService *services.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// ListAlerts lists alerts across the caller's organizations.
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	orgIDs, ok := resolveListScope(c, authCtx.OrganizationIDs())
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.AlertFilter{
		OrganizationIDs: orgIDs,
		Page:            params.Page,
		PageSize:        params.Limit,
	}

	if severity := c.Query("severity"); severity != "" {
		s := models.AlertSeverity(severity)
		filter.Severity = &s
	}
	if c.Query("unread") == "true" {
		filter.UnreadOnly = true
	}

	alerts, total, err := h.alertService.ListAlerts(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch alerts")
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertListResponse(alerts, params.Page, params.Limit, total))
}

// GetAlert returns one alert if it belongs to one of the caller's
// organizations. Another tenant's alert answers 404.
func (h *AlertHandler) GetAlert(c *gin.Context) {
	alert, ok := h.loadVisibleAlert(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertDTO(*alert))
}

// MarkAlertRead marks an alert read. Repeating the call yields the same
// end state and succeeds.
func (h *AlertHandler) MarkAlertRead(c *gin.Context) {
	alert, ok := h.loadVisibleAlert(c)
	if !ok {
		return
	}

	updated, err := h.alertService.MarkAlertRead(alert.ID)
	if err != nil {
		respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertDTO(*updated))
}

// DeleteAlert removes an alert. Restricted to managing roles by the route.
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	alert, ok := h.loadVisibleAlert(c)
	if !ok {
		return
	}

	authCtx, _ := middleware.GetAuthContext(c)
	member, ok := authCtx.MembershipFor(alert.OrganizationID)
	if !ok || !member.Role.CanManage() {
		apierrors.Forbidden(c, "")
		return
	}

	if err := h.alertService.DeleteAlert(alert.ID); err != nil {
		respondAlertError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Alert deleted successfully",
	})
}

// loadVisibleAlert resolves :id and enforces tenant visibility: the alert's
// organization must be in the caller's membership set, and a miss is
// indistinguishable from a nonexistent alert.
func (h *AlertHandler) loadVisibleAlert(c *gin.Context) (*models.Alert, bool) {
	alertID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid alert ID")
		return nil, false
	}

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, false
	}

	alert, err := h.alertService.GetAlert(alertID)
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			apierrors.NotFound(c, "Alert not found")
		} else {
			apierrors.InternalError(c, "")
		}
		return nil, false
	}

	if _, ok := authCtx.MembershipFor(alert.OrganizationID); !ok {
		apierrors.NotFound(c, "Alert not found")
		return nil, false
	}

	return alert, true
}

func respondAlertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlertNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
