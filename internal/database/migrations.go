package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database. The existence
// check reads pg_indexes, so only the postgres driver gets explicit indexes;
// other drivers rely on the gorm tag indexes from AutoMigrate.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Session lookup is on the hot path of every authenticated request
		{"sessions", "idx_sessions_token_hash_expires", "token_hash, expires_at"},

		// Membership lookup by compound key backs every tenant check
		{"organization_members", "idx_org_members_organization_id", "organization_id"},
		{"organization_members", "idx_org_members_user_id", "user_id"},

		// Supplier filtering and sorting
		{"suppliers", "idx_suppliers_organization_id", "organization_id"},
		{"suppliers", "idx_suppliers_status", "status"},
		{"suppliers", "idx_suppliers_country", "country"},

		// Alert list views filter on read state and severity
		{"alerts", "idx_alerts_organization_read", "organization_id, read"},
		{"alerts", "idx_alerts_severity", "severity"},
		{"alerts", "idx_alerts_created_at", "created_at"},

		// Risk history is queried newest-first per supplier
		{"risk_assessments", "idx_risk_assessments_supplier_assessed", "supplier_id, assessed_at"},

		{"monitoring_zones", "idx_monitoring_zones_supplier_id", "supplier_id"},
		{"detections", "idx_detections_zone_detected", "zone_id, detected_at"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
