package services

import (
	"fmt"
	"time"

	"github.com/supplychainlens/monitoring-api/internal/models"
	"gorm.io/gorm"
)

// DashboardService aggregates per-organization summary figures. Reads only;
// every query is already scoped to one organization by the caller.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardSummary is the aggregate view for one organization.
type DashboardSummary struct {
	SupplierCount    int64              `json:"supplier_count"`
	FlaggedSuppliers int64              `json:"flagged_suppliers"`
	UnreadAlerts     int64              `json:"unread_alerts"`
	AverageRiskScore *float64           `json:"average_risk_score"`
	RecentDetections []models.Detection `json:"recent_detections"`
}

// GetSummary computes the dashboard for one organization.
func (s *DashboardService) GetSummary(organizationID uint64) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	if err := s.db.Model(&models.Supplier{}).
		Where("organization_id = ?", organizationID).
		Count(&summary.SupplierCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}

	if err := s.db.Model(&models.Supplier{}).
		Where("organization_id = ? AND status = ?", organizationID, models.SupplierStatusFlagged).
		Count(&summary.FlaggedSuppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to count flagged suppliers: %w", err)
	}

	if err := s.db.Model(&models.Alert{}).
		Where("organization_id = ? AND read = ?", organizationID, false).
		Count(&summary.UnreadAlerts).Error; err != nil {
		return nil, fmt.Errorf("failed to count unread alerts: %w", err)
	}

	var avg *float64
	if err := s.db.Model(&models.Supplier{}).
		Where("organization_id = ? AND risk_score IS NOT NULL", organizationID).
		Select("AVG(risk_score)").
		Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to average risk scores: %w", err)
	}
	summary.AverageRiskScore = avg

	since := time.Now().AddDate(0, 0, -30)
	if err := s.db.Model(&models.Detection{}).
		Joins("JOIN monitoring_zones ON monitoring_zones.id = detections.zone_id").
		Joins("JOIN suppliers ON suppliers.id = monitoring_zones.supplier_id").
		Where("suppliers.organization_id = ? AND detections.detected_at >= ?", organizationID, since).
		Order("detections.detected_at DESC").
		Limit(10).
		Find(&summary.RecentDetections).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent detections: %w", err)
	}

	return summary, nil
}
