package dto

import (
	"time"

	"github.com/supplychainlens/monitoring-api/internal/models"
)

// ReportDTO represents a report in API responses
type ReportDTO struct {
	PublicID       string              `json:"id"`
	OrganizationID uint64              `json:"organization_id"`
	Title          string              `json:"title"`
	ReportType     string              `json:"report_type"`
	Status         models.ReportStatus `json:"status"`
	FileURL        string              `json:"file_url,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToReportDTO converts a Report model to ReportDTO
func ToReportDTO(report models.Report) ReportDTO {
	return ReportDTO{
		PublicID:       report.PublicID,
		OrganizationID: report.OrganizationID,
		Title:          report.Title,
		ReportType:     report.ReportType,
		Status:         report.Status,
		FileURL:        report.FileURL,
		CreatedAt:      report.CreatedAt,
	}
}
