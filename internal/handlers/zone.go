package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supplychainlens/monitoring-api/internal/database"
	"github.com/supplychainlens/monitoring-api/internal/dto"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/middleware"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"gorm.io/datatypes"
)

// ZoneHandler manages monitoring zones nested under a supplier. Tenant
// scoping comes from RequireSupplierAccess on the parent route.
type ZoneHandler struct{}

// NewZoneHandler creates a new ZoneHandler.
func NewZoneHandler() *ZoneHandler {
	return &ZoneHandler{}
}

// ListZones lists a supplier's monitoring zones
func (h *ZoneHandler) ListZones(c *gin.Context) {
	supplier, ok := middleware.GetSupplier(c)
	if !ok {
		apierrors.InternalError(c, "Supplier not found in context")
		return
	}

	var zones []models.MonitoringZone
	if err := database.GetDB().
		Where("supplier_id = ?", supplier.ID).
		Order("created_at DESC").
		Find(&zones).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch monitoring zones")
		return
	}

	zoneDTOs := make([]dto.MonitoringZoneDTO, len(zones))
	for i, zone := range zones {
		zoneDTOs[i] = dto.ToMonitoringZoneDTO(zone)
	}

	c.JSON(http.StatusOK, gin.H{
		"monitoring_zones": zoneDTOs,
	})
}

// CreateZone defines a new monitoring zone for a supplier
func (h *ZoneHandler) CreateZone(c *gin.Context) {
	supplier, ok := middleware.GetSupplier(c)
	if !ok {
		apierrors.InternalError(c, "Supplier not found in context")
		return
	}

	type CreateZoneRequest struct {
		Name     string         `json:"name" binding:"required"`
		ZoneType string         `json:"zone_type"`
		Geometry datatypes.JSON `json:"geometry"`
		RadiusKm *float64       `json:"radius_km"`
	}

	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	zoneType := models.ZoneType(req.ZoneType)
	if req.ZoneType == "" {
		zoneType = models.ZoneTypeGeneral
	}

	zone := models.MonitoringZone{
		SupplierID: supplier.ID,
		Name:       req.Name,
		ZoneType:   zoneType,
		Geometry:   req.Geometry,
		RadiusKm:   req.RadiusKm,
		IsActive:   true,
	}

	if err := database.GetDB().Create(&zone).Error; err != nil {
		apierrors.InternalError(c, "Failed to create monitoring zone")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMonitoringZoneDTO(zone))
}

// UpdateZone updates a monitoring zone
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	zone, ok := h.loadZone(c)
	if !ok {
		return
	}

	type UpdateZoneRequest struct {
		Name     *string        `json:"name"`
		ZoneType *string        `json:"zone_type"`
		Geometry datatypes.JSON `json:"geometry"`
		RadiusKm *float64       `json:"radius_km"`
		IsActive *bool          `json:"is_active"`
	}

	var req UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		zone.Name = *req.Name
	}
	if req.ZoneType != nil {
		zone.ZoneType = models.ZoneType(*req.ZoneType)
	}
	if req.Geometry != nil {
		zone.Geometry = req.Geometry
	}
	if req.RadiusKm != nil {
		zone.RadiusKm = req.RadiusKm
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if err := database.GetDB().Save(&zone).Error; err != nil {
		apierrors.InternalError(c, "Failed to update monitoring zone")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonitoringZoneDTO(zone))
}

// DeleteZone removes a monitoring zone
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	zone, ok := h.loadZone(c)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(&zone).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete monitoring zone")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Monitoring zone deleted successfully",
	})
}

// loadZone resolves the :zone_id parameter within the supplier already
// checked by RequireSupplierAccess. A zone under another supplier answers
// the same 404 as a missing one.
func (h *ZoneHandler) loadZone(c *gin.Context) (models.MonitoringZone, bool) {
	supplier, ok := middleware.GetSupplier(c)
	if !ok {
		apierrors.InternalError(c, "Supplier not found in context")
		return models.MonitoringZone{}, false
	}

	zoneID, err := strconv.ParseUint(c.Param("zone_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid zone ID")
		return models.MonitoringZone{}, false
	}

	var zone models.MonitoringZone
	if err := database.GetDB().
		Where("id = ? AND supplier_id = ?", zoneID, supplier.ID).
		First(&zone).Error; err != nil {
		apierrors.NotFound(c, "Monitoring zone not found")
		return models.MonitoringZone{}, false
	}

	return zone, true
}
