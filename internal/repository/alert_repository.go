package repository

import (
	"github.com/supplychainlens/monitoring-api/internal/models"
	"gorm.io/gorm"
)

// GormAlertRepository is a GORM implementation of AlertRepository
type GormAlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new AlertRepository
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &GormAlertRepository{db: db}
}

// Create creates a new alert
func (r *GormAlertRepository) Create(alert *models.Alert) error {
	return r.db.Create(alert).Error
}

// FindByID finds an alert by ID
func (r *GormAlertRepository) FindByID(id uint64) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// List retrieves alerts with filtering and pagination
func (r *GormAlertRepository) List(filter AlertFilter) ([]models.Alert, int64, error) {
	var alerts []models.Alert

	if len(filter.OrganizationIDs) == 0 {
		return []models.Alert{}, 0, nil
	}

	query := r.db.Model(&models.Alert{}).Where("alerts.organization_id IN ?", filter.OrganizationIDs)

	if filter.Severity != nil {
		query = query.Where("alerts.severity = ?", *filter.Severity)
	}
	if filter.UnreadOnly {
		query = query.Where("alerts.read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("alerts.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Supplier").Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

// MarkRead sets the read flag. Updating an already-read alert is a no-op,
// which keeps the operation idempotent.
func (r *GormAlertRepository) MarkRead(id uint64) error {
	return r.db.Model(&models.Alert{}).Where("id = ?", id).Update("read", true).Error
}

// Delete deletes an alert
func (r *GormAlertRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Alert{}, id).Error
}
