package models

import "time"

type DetectionType string

const (
	DetectionTypeDeforestation DetectionType = "deforestation"
	DetectionTypeMining        DetectionType = "mining"
)

// Detection is a single finding reported by the external image-analysis
// pipeline for a monitoring zone.
type Detection struct {
	ID         uint64        `gorm:"primarykey" json:"id"`
	ZoneID     uint64        `gorm:"not null;index" json:"zone_id"`
	Type       DetectionType `gorm:"type:varchar(30);not null" json:"type"`
	Confidence float64       `gorm:"not null" json:"confidence"`
	AreaHa     float64       `json:"area_ha"`
	DetectedAt time.Time     `gorm:"index;not null" json:"detected_at"`
	CreatedAt  time.Time     `json:"created_at"`

	// Relations
	Zone MonitoringZone `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
}

// SatelliteScene records one captured satellite image reference for a zone.
type SatelliteScene struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ZoneID     uint64    `gorm:"not null;index" json:"zone_id"`
	Source     string    `gorm:"type:varchar(50)" json:"source"`
	CloudCover float64   `json:"cloud_cover"`
	ImageURL   string    `gorm:"type:text" json:"image_url"`
	CapturedAt time.Time `gorm:"index;not null" json:"captured_at"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Zone MonitoringZone `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
}
