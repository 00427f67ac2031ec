package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/supplychainlens/monitoring-api/internal/dto"
	"github.com/supplychainlens/monitoring-api/internal/models"
)

func TestReportHandler_CreateStartsPending(t *testing.T) {
	env := setupAPITestEnv(t)

	user, token := env.createUserWithSession(t, "reporter@example.com")
	org := env.createOrgWithMember(t, "report-org", user.ID, models.RoleMember)

	w := doJSON(t, env.router, http.MethodPost, "/api/reports", map[string]any{
		"organization_id": org.ID,
		"title":           "Q3 risk overview",
		"report_type":     "risk_summary",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.ReportDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.ReportStatusPending, created.Status)

	// The public id is a UUID, never the row id.
	_, err := uuid.Parse(created.PublicID)
	require.NoError(t, err)

	w = doJSON(t, env.router, http.MethodGet, "/api/reports/"+created.PublicID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReportHandler_CreateForForeignOrganization403(t *testing.T) {
	env := setupAPITestEnv(t)

	userA, tokenA := env.createUserWithSession(t, "repa@example.com")
	userB, _ := env.createUserWithSession(t, "repb@example.com")

	env.createOrgWithMember(t, "rep-org-a", userA.ID, models.RoleMember)
	orgB := env.createOrgWithMember(t, "rep-org-b", userB.ID, models.RoleMember)

	w := doJSON(t, env.router, http.MethodPost, "/api/reports", map[string]any{
		"organization_id": orgB.ID,
		"title":           "Sneaky",
		"report_type":     "risk_summary",
	}, tokenA)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestReportHandler_CrossTenantGet404(t *testing.T) {
	env := setupAPITestEnv(t)

	userA, tokenA := env.createUserWithSession(t, "crossa@example.com")
	userB, tokenB := env.createUserWithSession(t, "crossb@example.com")

	env.createOrgWithMember(t, "cross-org-a", userA.ID, models.RoleMember)
	orgB := env.createOrgWithMember(t, "cross-org-b", userB.ID, models.RoleMember)

	w := doJSON(t, env.router, http.MethodPost, "/api/reports", map[string]any{
		"organization_id": orgB.ID,
		"title":           "Theirs",
		"report_type":     "risk_summary",
	}, tokenB)
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.ReportDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, env.router, http.MethodGet, "/api/reports/"+created.PublicID, nil, tokenA)
	require.Equal(t, http.StatusNotFound, w.Code)
}
