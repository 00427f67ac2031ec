package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusCompleted ReportStatus = "completed"
	ReportStatusFailed    ReportStatus = "failed"
)

// Report is a requested export. Rendering happens in an external worker;
// this service only tracks the request and its status.
type Report struct {
	ID             uint64            `gorm:"primarykey" json:"id"`
	PublicID       string            `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	OrganizationID uint64            `gorm:"not null;index" json:"organization_id"`
	RequestedByID  uint64            `gorm:"not null" json:"requested_by_id"`
	Title          string            `gorm:"type:varchar(255);not null" json:"title"`
	ReportType     string            `gorm:"type:varchar(50);not null" json:"report_type"`
	Status         ReportStatus      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Parameters     datatypes.JSONMap `json:"parameters,omitempty"`
	FileURL        string            `gorm:"type:text" json:"file_url,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	RequestedBy  User         `gorm:"foreignKey:RequestedByID" json:"requested_by,omitempty"`
}
