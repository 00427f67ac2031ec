package models

import (
	"time"

	"gorm.io/gorm"
)

type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
	SupplierStatusFlagged  SupplierStatus = "flagged"
)

type Supplier struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Country        string         `gorm:"type:varchar(100)" json:"country"`
	Industry       string         `gorm:"type:varchar(100)" json:"industry"`
	Address        string         `gorm:"type:text" json:"address"`
	Latitude       *float64       `json:"latitude"`
	Longitude      *float64       `json:"longitude"`
	RiskScore      *float64       `json:"risk_score"`
	Status         SupplierStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization    Organization     `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	MonitoringZones []MonitoringZone `gorm:"foreignKey:SupplierID" json:"monitoring_zones,omitempty"`
	RiskAssessments []RiskAssessment `gorm:"foreignKey:SupplierID" json:"risk_assessments,omitempty"`
}
