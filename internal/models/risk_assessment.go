package models

import "time"

// RiskAssessment is a point-in-time score for a supplier, produced by the
// external ML pipeline (or by seed data in development).
type RiskAssessment struct {
	ID                 uint64    `gorm:"primarykey" json:"id"`
	SupplierID         uint64    `gorm:"not null;index" json:"supplier_id"`
	OverallScore       float64   `gorm:"not null" json:"overall_score"`
	DeforestationScore float64   `json:"deforestation_score"`
	MiningScore        float64   `json:"mining_score"`
	LaborScore         float64   `json:"labor_score"`
	AssessedAt         time.Time `gorm:"index;not null" json:"assessed_at"`
	CreatedAt          time.Time `json:"created_at"`

	// Relations
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}
