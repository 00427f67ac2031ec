package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/supplychainlens/monitoring-api/internal/models"
)

// SupplierDTO represents a supplier in API responses
type SupplierDTO struct {
	ID             uint64                `json:"id"`
	OrganizationID uint64                `json:"organization_id"`
	Name           string                `json:"name"`
	Country        string                `json:"country,omitempty"`
	Industry       string                `json:"industry,omitempty"`
	Address        string                `json:"address,omitempty"`
	Latitude       *float64              `json:"latitude,omitempty"`
	Longitude      *float64              `json:"longitude,omitempty"`
	RiskScore      *float64              `json:"risk_score,omitempty"`
	Status         models.SupplierStatus `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// SupplierListResponse represents a paginated list of suppliers
type SupplierListResponse struct {
	Suppliers  []SupplierDTO `json:"suppliers"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int64         `json:"total_count"`
	TotalPages int           `json:"total_pages"`
}

// MonitoringZoneDTO represents a monitoring zone in API responses
type MonitoringZoneDTO struct {
	ID         uint64          `json:"id"`
	SupplierID uint64          `json:"supplier_id"`
	Name       string          `json:"name"`
	ZoneType   models.ZoneType `json:"zone_type"`
	Geometry   datatypes.JSON  `json:"geometry,omitempty"`
	RadiusKm   *float64        `json:"radius_km,omitempty"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToSupplierDTO converts a Supplier model to SupplierDTO
func ToSupplierDTO(supplier models.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:             supplier.ID,
		OrganizationID: supplier.OrganizationID,
		Name:           supplier.Name,
		Country:        supplier.Country,
		Industry:       supplier.Industry,
		Address:        supplier.Address,
		Latitude:       supplier.Latitude,
		Longitude:      supplier.Longitude,
		RiskScore:      supplier.RiskScore,
		Status:         supplier.Status,
		CreatedAt:      supplier.CreatedAt,
		UpdatedAt:      supplier.UpdatedAt,
	}
}

// ToSupplierListResponse converts a slice of suppliers to SupplierListResponse
func ToSupplierListResponse(suppliers []models.Supplier, page, pageSize int, totalCount int64) SupplierListResponse {
	items := make([]SupplierDTO, len(suppliers))
	for i, supplier := range suppliers {
		items[i] = ToSupplierDTO(supplier)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return SupplierListResponse{
		Suppliers:  items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// ToMonitoringZoneDTO converts a MonitoringZone model to MonitoringZoneDTO
func ToMonitoringZoneDTO(zone models.MonitoringZone) MonitoringZoneDTO {
	return MonitoringZoneDTO{
		ID:         zone.ID,
		SupplierID: zone.SupplierID,
		Name:       zone.Name,
		ZoneType:   zone.ZoneType,
		Geometry:   zone.Geometry,
		RadiusKm:   zone.RadiusKm,
		IsActive:   zone.IsActive,
		CreatedAt:  zone.CreatedAt,
	}
}
