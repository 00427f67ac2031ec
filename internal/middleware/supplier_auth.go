package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supplychainlens/monitoring-api/internal/constants"
	"github.com/supplychainlens/monitoring-api/internal/database"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/models"
)

// RequireSupplierAccess checks if the user may see a supplier: the supplier
// must exist and its organization must be in the caller's membership set.
// Existence and visibility are separate checks with the same 404 answer, so
// a caller can never probe another tenant's supplier IDs.
func RequireSupplierAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		supplierIDStr := c.Param("id")
		supplierID, err := strconv.ParseUint(supplierIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid supplier ID")
			c.Abort()
			return
		}

		authCtx, ok := GetAuthContext(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var supplier models.Supplier
		if err := database.GetDB().First(&supplier, supplierID).Error; err != nil {
			apierrors.NotFound(c, "Supplier not found")
			c.Abort()
			return
		}

		var member models.OrganizationMember
		err = database.GetDB().
			Where("organization_id = ? AND user_id = ?", supplier.OrganizationID, authCtx.UserID).
			First(&member).Error
		if err != nil {
			// 404 instead of 403 to avoid leaking supplier existence
			apierrors.NotFound(c, "Supplier not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeySupplier, supplier)
		c.Set(constants.ContextKeyMembership, member)
		c.Next()
	}
}

// GetSupplier retrieves the supplier loaded by RequireSupplierAccess.
func GetSupplier(c *gin.Context) (models.Supplier, bool) {
	v, exists := c.Get(constants.ContextKeySupplier)
	if !exists {
		return models.Supplier{}, false
	}
	supplier, ok := v.(models.Supplier)
	return supplier, ok
}
