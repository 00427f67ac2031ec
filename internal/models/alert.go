package models

import "time"

type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

type Alert struct {
	ID             uint64        `gorm:"primarykey" json:"id"`
	OrganizationID uint64        `gorm:"not null;index" json:"organization_id"`
	SupplierID     *uint64       `gorm:"index" json:"supplier_id"`
	ZoneID         *uint64       `json:"zone_id"`
	AlertType      string        `gorm:"type:varchar(50);not null" json:"alert_type"`
	Severity       AlertSeverity `gorm:"type:varchar(20);not null;default:'medium'" json:"severity"`
	Title          string        `gorm:"type:varchar(255);not null" json:"title"`
	Message        string        `gorm:"type:text" json:"message"`
	Read           bool          `gorm:"not null;default:false" json:"read"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Supplier     *Supplier    `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}
