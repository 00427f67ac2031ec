package middleware

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supplychainlens/monitoring-api/internal/auth"
	"github.com/supplychainlens/monitoring-api/internal/constants"
	"github.com/supplychainlens/monitoring-api/internal/database"
	apierrors "github.com/supplychainlens/monitoring-api/internal/errors"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"gorm.io/gorm"
)

// AuthMiddleware validates bearer tokens. A request is accepted only when the
// whole chain passes: token present, signature and claims valid, a live
// session row backs the token, and the user is still active. The signature
// check and the session lookup are independent layers of revocation; neither
// substitutes for the other.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

var errStoreUnavailable = errors.New("auth store unavailable")

// RequireAuth rejects any request that does not pass the full validation
// chain. Every rejection is a plain 401: missing, malformed, expired and
// revoked tokens must be indistinguishable to the caller.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, err := m.resolve(c)
		if err != nil {
			if errors.Is(err, errStoreUnavailable) {
				apierrors.ServiceUnavailable(c, "")
			} else {
				apierrors.Unauthorized(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAuthContext, authCtx)
		c.Set(constants.ContextKeyUserID, authCtx.UserID)
		c.Next()
	}
}

// OptionalAuth runs the same validation chain but proceeds anonymously on
// any failure instead of rejecting.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, err := m.resolve(c)
		if err == nil {
			c.Set(constants.ContextKeyAuthContext, authCtx)
			c.Set(constants.ContextKeyUserID, authCtx.UserID)
		}
		c.Next()
	}
}

// resolve walks the validation chain in order. The order is load-bearing:
// cheap local checks first, then the store-backed revocation checks.
func (m *AuthMiddleware) resolve(c *gin.Context) (*auth.Context, error) {
	// 1. Extract the bearer token.
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || strings.TrimSpace(token) == "" {
		return nil, auth.ErrInvalidToken
	}
	token = strings.TrimSpace(token)

	// 2. Verify signature and embedded expiry claim.
	claims, err := m.tokens.ParseAndValidate(token)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	claimedUserID, err := claims.UserID()
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	db := database.GetDB()

	// 3. Require a live session row. A cryptographically valid token whose
	// session was deleted (logout, admin revocation) stops here.
	var session models.Session
	err = db.Where("token_hash = ? AND expires_at > ?", auth.HashToken(token), time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, errStoreUnavailable
	}
	if session.UserID != claimedUserID {
		return nil, auth.ErrInvalidToken
	}

	// 4. Require an active user.
	var user models.User
	if err := db.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, errStoreUnavailable
	}
	if !user.IsActive {
		return nil, auth.ErrInvalidToken
	}

	// 5. Load memberships, fresh on every request so role changes apply
	// without re-login.
	var memberships []models.OrganizationMember
	if err := db.Where("user_id = ?", user.ID).Find(&memberships).Error; err != nil {
		return nil, errStoreUnavailable
	}

	authCtx := &auth.Context{
		UserID:      user.ID,
		Email:       user.Email,
		GlobalRole:  user.Role,
		Memberships: memberships,
	}

	// The working organization is only ever derived from the membership set:
	// an explicit header must name a membership, and the implicit fallback
	// applies only when the choice is unambiguous.
	if raw := c.GetHeader(constants.OrganizationHeader); raw != "" {
		orgID, err := strconv.ParseUint(raw, 10, 64)
		if err == nil {
			if member, ok := authCtx.MembershipFor(orgID); ok {
				authCtx.OrganizationID = &member.OrganizationID
				authCtx.OrganizationRole = &member.Role
			}
		}
	} else if len(memberships) == 1 {
		authCtx.OrganizationID = &memberships[0].OrganizationID
		authCtx.OrganizationRole = &memberships[0].Role
	}

	return authCtx, nil
}

// RequireRole gates an endpoint on the caller's global role. This is coarse
// user-level gating; organization-scoped permission is a separate check.
func RequireRole(allowed ...models.GlobalRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, role := range allowed {
			if authCtx.GlobalRole == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
		c.Abort()
	}
}

// GetAuthContext retrieves the resolved auth context from the request.
func GetAuthContext(c *gin.Context) (*auth.Context, bool) {
	v, exists := c.Get(constants.ContextKeyAuthContext)
	if !exists {
		return nil, false
	}
	authCtx, ok := v.(*auth.Context)
	return authCtx, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
