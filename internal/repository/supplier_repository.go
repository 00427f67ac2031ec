package repository

import (
	"github.com/supplychainlens/monitoring-api/internal/models"
	"gorm.io/gorm"
)

// GormSupplierRepository is a GORM implementation of SupplierRepository
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new SupplierRepository
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &GormSupplierRepository{db: db}
}

// Create creates a new supplier
func (r *GormSupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

// FindByID finds a supplier by ID with optional preloading
func (r *GormSupplierRepository) FindByID(id uint64, preload ...string) (*models.Supplier, error) {
	var supplier models.Supplier
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&supplier, id).Error; err != nil {
		return nil, err
	}

	return &supplier, nil
}

// List retrieves suppliers with filtering and pagination
func (r *GormSupplierRepository) List(filter SupplierFilter) ([]models.Supplier, int64, error) {
	var suppliers []models.Supplier

	if len(filter.OrganizationIDs) == 0 {
		return []models.Supplier{}, 0, nil
	}

	query := r.db.Model(&models.Supplier{}).Where("suppliers.organization_id IN ?", filter.OrganizationIDs)

	if filter.Country != nil {
		query = query.Where("suppliers.country = ?", *filter.Country)
	}
	if filter.Status != nil {
		query = query.Where("suppliers.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("suppliers.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

// Update updates a supplier
func (r *GormSupplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete soft deletes a supplier and its monitoring zones
func (r *GormSupplierRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("supplier_id = ?", id).Delete(&models.MonitoringZone{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Supplier{}, id).Error
	})
}
