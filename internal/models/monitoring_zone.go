package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ZoneType string

const (
	ZoneTypeDeforestation ZoneType = "deforestation"
	ZoneTypeMining        ZoneType = "mining"
	ZoneTypeGeneral       ZoneType = "general"
)

// MonitoringZone is a geospatial area watched by the external ML pipeline.
// Geometry is an opaque GeoJSON blob; this service never interprets it.
type MonitoringZone struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	SupplierID uint64         `gorm:"not null;index" json:"supplier_id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	ZoneType   ZoneType       `gorm:"type:varchar(30);not null;default:'general'" json:"zone_type"`
	Geometry   datatypes.JSON `json:"geometry,omitempty"`
	RadiusKm   *float64       `json:"radius_km"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Supplier   Supplier         `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Detections []Detection      `gorm:"foreignKey:ZoneID" json:"detections,omitempty"`
	Scenes     []SatelliteScene `gorm:"foreignKey:ZoneID" json:"scenes,omitempty"`
}
