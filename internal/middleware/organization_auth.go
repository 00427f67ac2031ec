package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supplychainlens/monitoring-api/internal/constants"
	"github.com/supplychainlens/monitoring-api/internal/database"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/models"
)

// RequireOrganizationAccess checks if the user is a member of the organization.
// Non-members get the same 404 as a nonexistent organization; existence and
// visibility are never distinguishable across tenants.
func RequireOrganizationAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get organization ID from URL parameter
		orgIDStr := c.Param("id")
		orgID, err := strconv.ParseUint(orgIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid organization ID")
			c.Abort()
			return
		}

		authCtx, ok := GetAuthContext(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Check if organization exists
		var org models.Organization
		if err := database.GetDB().First(&org, orgID).Error; err != nil {
			apierrors.NotFound(c, "Organization not found")
			c.Abort()
			return
		}

		// Membership is re-read per request; a role change or removal takes
		// effect immediately, not at next login.
		var member models.OrganizationMember
		err = database.GetDB().Where("organization_id = ? AND user_id = ?", orgID, authCtx.UserID).
			First(&member).Error
		if err != nil {
			// 404 instead of 403 to avoid leaking organization existence
			apierrors.NotFound(c, "Organization not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOrganization, org)
		c.Set(constants.ContextKeyMembership, member)
		c.Next()
	}
}

// RequireOrganizationRole checks that the membership loaded by
// RequireOrganizationAccess carries one of the allowed roles. Used on
// mutating routes; member and viewer are read-scoped.
func RequireOrganizationRole(allowed ...models.OrganizationRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberInterface, exists := c.Get(constants.ContextKeyMembership)
		if !exists {
			apierrors.Forbidden(c, "Organization access required")
			c.Abort()
			return
		}

		member, ok := memberInterface.(models.OrganizationMember)
		if !ok {
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}

		for _, role := range allowed {
			if member.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Insufficient organization role")
		c.Abort()
	}
}

// RequireOrganizationOwner restricts a route to organization owners.
func RequireOrganizationOwner() gin.HandlerFunc {
	return RequireOrganizationRole(models.RoleOwner)
}

// GetOrganization retrieves the organization loaded by RequireOrganizationAccess.
func GetOrganization(c *gin.Context) (models.Organization, bool) {
	v, exists := c.Get(constants.ContextKeyOrganization)
	if !exists {
		return models.Organization{}, false
	}
	org, ok := v.(models.Organization)
	return org, ok
}

// GetMembership retrieves the membership loaded by RequireOrganizationAccess.
func GetMembership(c *gin.Context) (models.OrganizationMember, bool) {
	v, exists := c.Get(constants.ContextKeyMembership)
	if !exists {
		return models.OrganizationMember{}, false
	}
	member, ok := v.(models.OrganizationMember)
	return member, ok
}
