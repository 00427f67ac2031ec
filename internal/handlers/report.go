package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/supplychainlens/monitoring-api/internal/database"
	"github.com/supplychainlens/monitoring-api/internal/dto"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/middleware"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/utils"
	"gorm.io/datatypes"
)

// ReportHandler tracks export requests. Rendering is owned by an external
// worker; this service records the request and hands out status.
type ReportHandler struct{}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// ListReports lists report requests across the caller's organizations.
func (h *ReportHandler) ListReports(c *gin.Context) {
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

	var total int64
	if err := database.GetDB().Model(&models.Report{}).
		Scopes(database.TenantScope(orgIDs)).
		Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch reports")
		return
	}

	var reports []models.Report
	if err := database.GetDB().
		Scopes(database.TenantScope(orgIDs)).
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&reports).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch reports")
		return
	}

	reportDTOs := make([]dto.ReportDTO, len(reports))
	for i, report := range reports {
		reportDTOs[i] = dto.ToReportDTO(report)
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reportDTOs,
		"pagination": gin.H{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// CreateReport queues a new report request in pending state.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateReportRequest struct {
		OrganizationID uint64            `json:"organization_id" binding:"required"`
		Title          string            `json:"title" binding:"required"`
		ReportType     string            `json:"report_type" binding:"required"`
		Parameters     datatypes.JSONMap `json:"parameters"`
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, ok := authCtx.MembershipFor(req.OrganizationID); !ok {
		apierrors.Forbidden(c, "")
		return
	}

	report := models.Report{
		PublicID:       uuid.NewString(),
		OrganizationID: req.OrganizationID,
		RequestedByID:  authCtx.UserID,
		Title:          req.Title,
		ReportType:     req.ReportType,
		Status:         models.ReportStatusPending,
		Parameters:     req.Parameters,
	}

	if err := database.GetDB().Create(&report).Error; err != nil {
		apierrors.InternalError(c, "Failed to create report")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(report))
}

// GetReport returns one report by its public id. A report in another
// tenant's organization answers the same 404 as a missing one.
func (h *ReportHandler) GetReport(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	publicID := c.Param("id")
	if _, err := uuid.Parse(publicID); err != nil {
		apierrors.NotFound(c, "Report not found")
		return
	}

	var report models.Report
	if err := database.GetDB().
		Where("public_id = ?", publicID).
		First(&report).Error; err != nil {
		apierrors.NotFound(c, "Report not found")
		return
	}

	if _, ok := authCtx.MembershipFor(report.OrganizationID); !ok {
		apierrors.NotFound(c, "Report not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(report))
}
