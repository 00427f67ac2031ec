package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supplychainlens/monitoring-api/internal/constants"
	"github.com/supplychainlens/monitoring-api/internal/dto"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/middleware"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/repository"
	"github.com/supplychainlens/monitoring-api/internal/services"
	"github.com/supplychainlens/monitoring-api/internal/utils"
)

// SupplierHandler coordinates supplier HTTP handlers.
type SupplierHandler struct {
	supplierService *services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierService *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
	}
}

// ListSuppliers lists suppliers across the caller's organizations. An
// explicit organization (query param or header) narrows the scope but must
// be one of the caller's memberships; a caller with zero memberships gets an
// empty page, not an error.
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
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
	filter := repository.SupplierFilter{
		OrganizationIDs: orgIDs,
		Page:            params.Page,
		PageSize:        params.Limit,
	}

	if country := c.Query("country"); country != "" {
		filter.Country = &country
	}
	if status := c.Query("status"); status != "" {
		s := models.SupplierStatus(status)
		filter.Status = &s
	}

	suppliers, total, err := h.supplierService.ListSuppliers(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch suppliers")
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierListResponse(suppliers, params.Page, params.Limit, total))
}

// CreateSupplier registers a supplier. The target organization comes from
// the request body and must be one the caller can manage.
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateSupplierRequest struct {
		OrganizationID uint64   `json:"organization_id" binding:"required"`
		Name           string   `json:"name" binding:"required"`
		Country        string   `json:"country"`
		Industry       string   `json:"industry"`
		Address        string   `json:"address"`
		Latitude       *float64 `json:"latitude"`
		Longitude      *float64 `json:"longitude"`
	}

	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, ok := authCtx.MembershipFor(req.OrganizationID)
	if !ok || !member.Role.CanManage() {
		apierrors.Forbidden(c, "")
		return
	}

	supplier, err := h.supplierService.CreateSupplier(services.CreateSupplierInput{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Country:        req.Country,
		Industry:       req.Industry,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		respondSupplierError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSupplierDTO(*supplier))
}

// GetSupplier returns one supplier. Tenant visibility was already enforced
// by RequireSupplierAccess.
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplier, ok := middleware.GetSupplier(c)
	if !ok {
		apierrors.InternalError(c, "Supplier not found in context")
		return
	}

	full, err := h.supplierService.GetSupplier(supplier.ID, "MonitoringZones", "RiskAssessments")
	if err != nil {
		respondSupplierError(c, err)
		return
	}

	zones := make([]dto.MonitoringZoneDTO, len(full.MonitoringZones))
	for i, zone := range full.MonitoringZones {
		zones[i] = dto.ToMonitoringZoneDTO(zone)
	}

	c.JSON(http.StatusOK, gin.H{
		"supplier":         dto.ToSupplierDTO(*full),
		"monitoring_zones": zones,
		"risk_assessments": full.RiskAssessments,
	})
}

// UpdateSupplier applies changes to a supplier.
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	supplier, ok := middleware.GetSupplier(c)
	if !ok {
		apierrors.InternalError(c, "Supplier not found in context")
		return
	}

	type UpdateSupplierRequest struct {
		Name      *string  `json:"name"`
		Country   *string  `json:"country"`
		Industry  *string  `json:"industry"`
		Address   *string  `json:"address"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Status    *string  `json:"status"`
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateSupplierInput{
		Name:      req.Name,
		Country:   req.Country,
		Industry:  req.Industry,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.Status != nil {
		s := models.SupplierStatus(*req.Status)
		input.Status = &s
	}

	updated, err := h.supplierService.UpdateSupplier(supplier.ID, input)
	if err != nil {
		respondSupplierError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierDTO(*updated))
}

// DeleteSupplier removes a supplier and its monitoring zones.
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	supplier, ok := middleware.GetSupplier(c)
	if !ok {
		apierrors.InternalError(c, "Supplier not found in context")
		return
	}

	if err := h.supplierService.DeleteSupplier(supplier.ID); err != nil {
		respondSupplierError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Supplier deleted successfully",
	})
}

// resolveListScope narrows a list query to the caller's memberships. An
// explicit organization outside the membership set is a 403: a
// client-supplied id is never trusted on its own.
func resolveListScope(c *gin.Context, memberOrgIDs []uint64) ([]uint64, bool) {
	explicit := c.Query("organization_id")
	if explicit == "" {
		explicit = c.GetHeader(constants.OrganizationHeader)
	}
	if explicit == "" {
		return memberOrgIDs, true
	}

	orgID, err := strconv.ParseUint(explicit, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return nil, false
	}

	for _, id := range memberOrgIDs {
		if id == orgID {
			return []uint64{orgID}, true
		}
	}

	apierrors.Forbidden(c, "")
	return nil, false
}

func respondSupplierError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSupplierName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSupplierNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
