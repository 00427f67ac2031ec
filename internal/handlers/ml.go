package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supplychainlens/monitoring-api/internal/database"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"gorm.io/gorm"
)

// MLHandler receives results from the external image-analysis pipeline.
// Routes are restricted to global admins; the pipeline authenticates as a
// dedicated admin user.
type MLHandler struct{}

// NewMLHandler creates a new MLHandler.
func NewMLHandler() *MLHandler {
	return &MLHandler{}
}

// IngestDetections stores a batch of detections for a zone, records the
// scene they came from and raises an alert for high-confidence findings.
func (h *MLHandler) IngestDetections(c *gin.Context) {
	type DetectionInput struct {
		Type       string    `json:"type" binding:"required"`
		Confidence float64   `json:"confidence" binding:"required"`
		AreaHa     float64   `json:"area_ha"`
		DetectedAt time.Time `json:"detected_at" binding:"required"`
	}

	type IngestRequest struct {
		ZoneID     uint64           `json:"zone_id" binding:"required"`
		Source     string           `json:"source"`
		CloudCover float64          `json:"cloud_cover"`
		ImageURL   string           `json:"image_url"`
		CapturedAt *time.Time       `json:"captured_at"`
		Detections []DetectionInput `json:"detections" binding:"required"`
	}

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var zone models.MonitoringZone
	if err := database.GetDB().
		Preload("Supplier").
		First(&zone, req.ZoneID).Error; err != nil {
		apierrors.NotFound(c, "Monitoring zone not found")
		return
	}

	created := 0
	alerts := 0
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if req.CapturedAt != nil {
			scene := models.SatelliteScene{
				ZoneID:     zone.ID,
				Source:     req.Source,
				CloudCover: req.CloudCover,
				ImageURL:   req.ImageURL,
				CapturedAt: *req.CapturedAt,
			}
			if err := tx.Create(&scene).Error; err != nil {
				return err
			}
		}

		for _, d := range req.Detections {
			detection := models.Detection{
				ZoneID:     zone.ID,
				Type:       models.DetectionType(d.Type),
				Confidence: d.Confidence,
				AreaHa:     d.AreaHa,
				DetectedAt: d.DetectedAt,
			}
			if err := tx.Create(&detection).Error; err != nil {
				return err
			}
			created++

			if d.Confidence >= 0.8 {
				alert := models.Alert{
					OrganizationID: zone.Supplier.OrganizationID,
					SupplierID:     &zone.SupplierID,
					ZoneID:         &zone.ID,
					AlertType:      "detection",
					Severity:       severityForConfidence(d.Confidence),
					Title:          "New " + d.Type + " detection",
					Message:        "High-confidence detection in zone " + zone.Name,
				}
				if err := tx.Create(&alert).Error; err != nil {
					return err
				}
				alerts++
			}
		}
		return nil
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to ingest detections")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":            true,
		"detections_created": created,
		"alerts_created":     alerts,
	})
}

// IngestRiskAssessment stores a new risk score for a supplier and mirrors
// the overall score onto the supplier row.
func (h *MLHandler) IngestRiskAssessment(c *gin.Context) {
	type RiskRequest struct {
		SupplierID         uint64     `json:"supplier_id" binding:"required"`
		OverallScore       float64    `json:"overall_score" binding:"required"`
		DeforestationScore float64    `json:"deforestation_score"`
		MiningScore        float64    `json:"mining_score"`
		LaborScore         float64    `json:"labor_score"`
		AssessedAt         *time.Time `json:"assessed_at"`
	}

	var req RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var supplier models.Supplier
	if err := database.GetDB().First(&supplier, req.SupplierID).Error; err != nil {
		apierrors.NotFound(c, "Supplier not found")
		return
	}

	assessedAt := time.Now()
	if req.AssessedAt != nil {
		assessedAt = *req.AssessedAt
	}

	assessment := models.RiskAssessment{
		SupplierID:         supplier.ID,
		OverallScore:       req.OverallScore,
		DeforestationScore: req.DeforestationScore,
		MiningScore:        req.MiningScore,
		LaborScore:         req.LaborScore,
		AssessedAt:         assessedAt,
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assessment).Error; err != nil {
			return err
		}
		return tx.Model(&supplier).
			Update("risk_score", req.OverallScore).Error
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to store risk assessment")
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

func severityForConfidence(confidence float64) models.AlertSeverity {
	if confidence >= 0.95 {
		return models.AlertSeverityCritical
	}
	return models.AlertSeverityHigh
}
