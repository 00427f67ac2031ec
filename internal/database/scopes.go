package database

import (
	"gorm.io/gorm"

	"github.com/supplychainlens/monitoring-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// TenantScope restricts a query to the given organizations. An empty set
// matches nothing: a caller with zero memberships sees empty results,
// never another tenant's rows.
func TenantScope(organizationIDs []uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(organizationIDs) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where("organization_id IN ?", organizationIDs)
	}
}
