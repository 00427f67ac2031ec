package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/supplychainlens/monitoring-api/internal/models"
)

func orgRouter(env middlewareTestEnv, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{env.mw.RequireAuth(), RequireOrganizationAccess()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		org, _ := GetOrganization(c)
		c.JSON(http.StatusOK, gin.H{"organization_id": org.ID})
	})
	r.GET("/organizations/:id", chain...)
	return r
}

func getOrg(r *gin.Engine, token string, orgID uint64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/organizations/"+strconv.FormatUint(orgID, 10), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireOrganizationAccess_Member(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	r := orgRouter(env)

	user := models.User{Email: "member@example.com", PasswordHash: "x", Name: "Member", Role: models.GlobalRoleUser, IsActive: true}
	token := env.issueFor(t, &user)

	org := models.Organization{Name: "Mine", InviteCode: "mine"}
	require.NoError(t, env.db.Create(&org).Error)
	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           models.RoleMember,
		JoinedAt:       time.Now(),
	}).Error)

	w := getOrg(r, token, org.ID)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireOrganizationAccess_NonMemberGets404(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	r := orgRouter(env)

	user := models.User{Email: "outsider@example.com", PasswordHash: "x", Name: "Outsider", Role: models.GlobalRoleUser, IsActive: true}
	token := env.issueFor(t, &user)

	other := models.Organization{Name: "Theirs", InviteCode: "theirs"}
	require.NoError(t, env.db.Create(&other).Error)

	// An existing organization the caller cannot see and a nonexistent one
	// must be indistinguishable.
	w := getOrg(r, token, other.ID)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = getOrg(r, token, other.ID+1000)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireOrganizationRole_ViewerBlocked(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	r := orgRouter(env, RequireOrganizationRole(models.RoleOwner, models.RoleAdmin))

	org := models.Organization{Name: "Gated", InviteCode: "gated"}
	require.NoError(t, env.db.Create(&org).Error)

	viewer := models.User{Email: "viewer@example.com", PasswordHash: "x", Name: "Viewer", Role: models.GlobalRoleUser, IsActive: true}
	viewerToken := env.issueFor(t, &viewer)
	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: org.ID, UserID: viewer.ID, Role: models.RoleViewer, JoinedAt: time.Now(),
	}).Error)

	admin := models.User{Email: "orgadmin@example.com", PasswordHash: "x", Name: "Org Admin", Role: models.GlobalRoleUser, IsActive: true}
	adminToken := env.issueFor(t, &admin)
	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: org.ID, UserID: admin.ID, Role: models.RoleAdmin, JoinedAt: time.Now(),
	}).Error)

	// The viewer is authenticated and can see the organization, so the
	// refusal is a 403, not a 404.
	w := getOrg(r, viewerToken, org.ID)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = getOrg(r, adminToken, org.ID)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireOrganizationAccess_RoleChangeAppliesImmediately(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	r := orgRouter(env, RequireOrganizationOwner())

	org := models.Organization{Name: "Handover", InviteCode: "handover"}
	require.NoError(t, env.db.Create(&org).Error)

	user := models.User{Email: "demoted@example.com", PasswordHash: "x", Name: "Demoted", Role: models.GlobalRoleUser, IsActive: true}
	token := env.issueFor(t, &user)
	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: org.ID, UserID: user.ID, Role: models.RoleOwner, JoinedAt: time.Now(),
	}).Error)

	w := getOrg(r, token, org.ID)
	require.Equal(t, http.StatusOK, w.Code)

	// Demote without re-login; the next request already sees the new role.
	require.NoError(t, env.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", org.ID, user.ID).
		Update("role", models.RoleMember).Error)

	w = getOrg(r, token, org.ID)
	require.Equal(t, http.StatusForbidden, w.Code)
}
