package repository

import (
	"time"

	"github.com/supplychainlens/monitoring-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithPersonalOrganization creates a user, their personal organization,
	// and corresponding membership within a single transaction.
	CreateWithPersonalOrganization(user *models.User, org *models.Organization, member *models.OrganizationMember) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Deactivate flags a user inactive without deleting the row
	Deactivate(id uint64) error
}

// SessionRepository defines the interface for session data access.
// Lookups run on the hot path of every authenticated request.
type SessionRepository interface {
	// Create persists a session row for an issued token
	Create(session *models.Session) error

	// FindLiveByTokenHash finds a session by token hash with expires_at
	// after the given instant
	FindLiveByTokenHash(tokenHash string, now time.Time) (*models.Session, error)

	// DeleteByTokenHash revokes the session backing a token
	DeleteByTokenHash(tokenHash string) error

	// DeleteByUserID revokes every session of a user
	DeleteByUserID(userID uint64) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByInviteCode finds an organization by invite code
	FindByInviteCode(code string) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// Delete deletes an organization and all related data
	Delete(id uint64) error

	// AddMember adds a member to an organization
	AddMember(member *models.OrganizationMember) error

	// UpdateMember updates an existing membership (role changes)
	UpdateMember(member *models.OrganizationMember) error

	// RemoveMember removes a member from an organization
	RemoveMember(organizationID, userID uint64) error

	// FindMember finds a specific organization member
	FindMember(organizationID, userID uint64) (*models.OrganizationMember, error)

	// ListMembersByUserID lists all organizations a user is a member of
	ListMembersByUserID(userID uint64) ([]models.OrganizationMember, error)

	// ListMembers lists all members of an organization
	ListMembers(organizationID uint64) ([]models.OrganizationMember, error)
}

// SupplierFilter holds filtering options for listing suppliers
type SupplierFilter struct {
	OrganizationIDs []uint64
	Country         *string
	Status          *models.SupplierStatus
	Page            int
	PageSize        int
}

// SupplierRepository defines the interface for supplier data access
type SupplierRepository interface {
	// Create creates a new supplier
	Create(supplier *models.Supplier) error

	// FindByID finds a supplier by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Supplier, error)

	// List retrieves suppliers with filtering and pagination
	List(filter SupplierFilter) ([]models.Supplier, int64, error)

	// Update updates a supplier
	Update(supplier *models.Supplier) error

	// Delete soft deletes a supplier and its zones
	Delete(id uint64) error
}

// AlertFilter holds filtering options for listing alerts
type AlertFilter struct {
	OrganizationIDs []uint64
	Severity        *models.AlertSeverity
	UnreadOnly      bool
	Page            int
	PageSize        int
}

// AlertRepository defines the interface for alert data access
type AlertRepository interface {
	// Create creates a new alert
	Create(alert *models.Alert) error

	// FindByID finds an alert by ID
	FindByID(id uint64) (*models.Alert, error)

	// List retrieves alerts with filtering and pagination
	List(filter AlertFilter) ([]models.Alert, int64, error)

	// MarkRead sets the read flag. Safe to call repeatedly.
	MarkRead(id uint64) error

	// Delete deletes an alert
	Delete(id uint64) error
}
