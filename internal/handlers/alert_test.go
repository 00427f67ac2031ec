package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/supplychainlens/monitoring-api/internal/dto"
	"github.com/supplychainlens/monitoring-api/internal/models"
)

func TestAlertHandler_MarkReadIsIdempotent(t *testing.T) {
	env := setupAPITestEnv(t)

	user, token := env.createUserWithSession(t, "reader@example.com")
	org := env.createOrgWithMember(t, "alert-org", user.ID, models.RoleMember)

	alert := models.Alert{
		OrganizationID: org.ID,
		AlertType:      "detection",
		Severity:       models.AlertSeverityHigh,
		Title:          "Something happened",
	}
	require.NoError(t, env.db.Create(&alert).Error)

	path := "/api/alerts/" + strconv.FormatUint(alert.ID, 10) + "/read"

	w := doJSON(t, env.router, http.MethodPatch, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var first dto.AlertDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.True(t, first.Read)

	// Second call must succeed and leave the same end state.
	w = doJSON(t, env.router, http.MethodPatch, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var second dto.AlertDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.True(t, second.Read)

	var stored models.Alert
	require.NoError(t, env.db.First(&stored, alert.ID).Error)
	require.True(t, stored.Read)
}

func TestAlertHandler_CrossTenant404(t *testing.T) {
	env := setupAPITestEnv(t)

	userA, tokenA := env.createUserWithSession(t, "alerta@example.com")
	userB, _ := env.createUserWithSession(t, "alertb@example.com")

	env.createOrgWithMember(t, "alert-org-a", userA.ID, models.RoleMember)
	orgB := env.createOrgWithMember(t, "alert-org-b", userB.ID, models.RoleMember)

	foreign := models.Alert{
		OrganizationID: orgB.ID,
		AlertType:      "detection",
		Severity:       models.AlertSeverityLow,
		Title:          "Not yours",
	}
	require.NoError(t, env.db.Create(&foreign).Error)

	// Reading, marking and deleting another tenant's alert all answer 404.
	base := "/api/alerts/" + strconv.FormatUint(foreign.ID, 10)

	w := doJSON(t, env.router, http.MethodGet, base, nil, tokenA)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, env.router, http.MethodPatch, base+"/read", nil, tokenA)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, env.router, http.MethodDelete, base, nil, tokenA)
	require.Equal(t, http.StatusNotFound, w.Code)

	var stored models.Alert
	require.NoError(t, env.db.First(&stored, foreign.ID).Error)
	require.False(t, stored.Read)
}

func TestAlertHandler_DeleteRequiresManagingRole(t *testing.T) {
	env := setupAPITestEnv(t)

	member, memberToken := env.createUserWithSession(t, "alertmember@example.com")
	org := env.createOrgWithMember(t, "alert-del-org", member.ID, models.RoleMember)

	alert := models.Alert{
		OrganizationID: org.ID,
		AlertType:      "detection",
		Severity:       models.AlertSeverityMedium,
		Title:          "Deletable",
	}
	require.NoError(t, env.db.Create(&alert).Error)

	base := "/api/alerts/" + strconv.FormatUint(alert.ID, 10)

	// A plain member can see the alert but not delete it.
	w := doJSON(t, env.router, http.MethodDelete, base, nil, memberToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	admin, adminToken := env.createUserWithSession(t, "alertadmin@example.com")
	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: org.ID, UserID: admin.ID, Role: models.RoleAdmin,
	}).Error)

	w = doJSON(t, env.router, http.MethodDelete, base, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAlertHandler_ListFilters(t *testing.T) {
	env := setupAPITestEnv(t)

	user, token := env.createUserWithSession(t, "filters@example.com")
	org := env.createOrgWithMember(t, "filter-org", user.ID, models.RoleMember)

	alerts := []models.Alert{
		{OrganizationID: org.ID, AlertType: "detection", Severity: models.AlertSeverityHigh, Title: "High unread"},
		{OrganizationID: org.ID, AlertType: "detection", Severity: models.AlertSeverityLow, Title: "Low read", Read: true},
		{OrganizationID: org.ID, AlertType: "detection", Severity: models.AlertSeverityHigh, Title: "High read", Read: true},
	}
	for i := range alerts {
		require.NoError(t, env.db.Create(&alerts[i]).Error)
	}

	w := doJSON(t, env.router, http.MethodGet, "/api/alerts?severity=high", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var bySeverity dto.AlertListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bySeverity))
	require.Equal(t, int64(2), bySeverity.TotalCount)

	w = doJSON(t, env.router, http.MethodGet, "/api/alerts?unread=true", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var unread dto.AlertListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unread))
	require.Equal(t, int64(1), unread.TotalCount)
	require.Equal(t, "High unread", unread.Alerts[0].Title)
}
