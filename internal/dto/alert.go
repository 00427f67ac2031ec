package dto

import (
	"time"

	"github.com/supplychainlens/monitoring-api/internal/models"
)

// AlertDTO represents an alert in API responses
type AlertDTO struct {
	ID             uint64               `json:"id"`
	OrganizationID uint64               `json:"organization_id"`
	SupplierID     *uint64              `json:"supplier_id,omitempty"`
	ZoneID         *uint64              `json:"zone_id,omitempty"`
	AlertType      string               `json:"alert_type"`
	Severity       models.AlertSeverity `json:"severity"`
	Title          string               `json:"title"`
	Message        string               `json:"message,omitempty"`
	Read           bool                 `json:"read"`
	Supplier       *SupplierDTO         `json:"supplier,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// AlertListResponse represents a paginated list of alerts
type AlertListResponse struct {
	Alerts     []AlertDTO `json:"alerts"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalCount int64      `json:"total_count"`
	TotalPages int        `json:"total_pages"`
}

// ToAlertDTO converts an Alert model to AlertDTO
func ToAlertDTO(alert models.Alert) AlertDTO {
	dto := AlertDTO{
		ID:             alert.ID,
		OrganizationID: alert.OrganizationID,
		SupplierID:     alert.SupplierID,
		ZoneID:         alert.ZoneID,
		AlertType:      alert.AlertType,
		Severity:       alert.Severity,
		Title:          alert.Title,
		Message:        alert.Message,
		Read:           alert.Read,
		CreatedAt:      alert.CreatedAt,
	}

	// Include supplier if preloaded
	if alert.Supplier != nil && alert.Supplier.ID != 0 {
		supplier := ToSupplierDTO(*alert.Supplier)
		dto.Supplier = &supplier
	}

	return dto
}

// ToAlertListResponse converts a slice of alerts to AlertListResponse
func ToAlertListResponse(alerts []models.Alert, page, pageSize int, totalCount int64) AlertListResponse {
	items := make([]AlertDTO, len(alerts))
	for i, alert := range alerts {
		items[i] = ToAlertDTO(alert)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return AlertListResponse{
		Alerts:     items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
