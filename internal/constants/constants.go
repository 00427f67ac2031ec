package constants

// Context keys
const (
	ContextKeyUserID       = "user_id"
	ContextKeyAuthContext  = "auth_context"
	ContextKeyOrganization = "organization"
	ContextKeyMembership   = "organization_member"
	ContextKeySupplier     = "supplier"
)

// OrganizationHeader carries an explicit working organization for list endpoints.
const OrganizationHeader = "X-Organization-ID"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
