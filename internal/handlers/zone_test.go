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

func TestZoneHandler_CreateAndList(t *testing.T) {
	env := setupAPITestEnv(t)

	user, token := env.createUserWithSession(t, "zones@example.com")
	org := env.createOrgWithMember(t, "zone-org", user.ID, models.RoleAdmin)

	supplier := models.Supplier{OrganizationID: org.ID, Name: "Zoned", Status: models.SupplierStatusActive}
	require.NoError(t, env.db.Create(&supplier).Error)

	base := "/api/suppliers/" + strconv.FormatUint(supplier.ID, 10) + "/zones"

	w := doJSON(t, env.router, http.MethodPost, base, map[string]any{
		"name":      "North concession",
		"zone_type": "deforestation",
		"geometry":  map[string]any{"type": "Point", "coordinates": []float64{101.5, 0.2}},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.MonitoringZoneDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, supplier.ID, created.SupplierID)
	require.Equal(t, models.ZoneTypeDeforestation, created.ZoneType)
	require.True(t, created.IsActive)

	w = doJSON(t, env.router, http.MethodGet, base, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "North concession")
}

func TestZoneHandler_ViewerCannotCreate(t *testing.T) {
	env := setupAPITestEnv(t)

	viewer, token := env.createUserWithSession(t, "zoneviewer@example.com")
	org := env.createOrgWithMember(t, "zone-view-org", viewer.ID, models.RoleViewer)

	supplier := models.Supplier{OrganizationID: org.ID, Name: "Readonly", Status: models.SupplierStatusActive}
	require.NoError(t, env.db.Create(&supplier).Error)

	w := doJSON(t, env.router, http.MethodPost, "/api/suppliers/"+strconv.FormatUint(supplier.ID, 10)+"/zones", map[string]any{
		"name": "Nope",
	}, token)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestZoneHandler_CrossSupplierZone404(t *testing.T) {
	env := setupAPITestEnv(t)

	user, token := env.createUserWithSession(t, "zonecross@example.com")
	org := env.createOrgWithMember(t, "zone-cross-org", user.ID, models.RoleAdmin)

	supplierA := models.Supplier{OrganizationID: org.ID, Name: "A", Status: models.SupplierStatusActive}
	supplierB := models.Supplier{OrganizationID: org.ID, Name: "B", Status: models.SupplierStatusActive}
	require.NoError(t, env.db.Create(&supplierA).Error)
	require.NoError(t, env.db.Create(&supplierB).Error)

	zoneB := models.MonitoringZone{SupplierID: supplierB.ID, Name: "B zone", ZoneType: models.ZoneTypeGeneral, IsActive: true}
	require.NoError(t, env.db.Create(&zoneB).Error)

	// Addressing supplier B's zone under supplier A answers 404 even though
	// the caller could reach it under the right parent.
	path := "/api/suppliers/" + strconv.FormatUint(supplierA.ID, 10) + "/zones/" + strconv.FormatUint(zoneB.ID, 10)
	w := doJSON(t, env.router, http.MethodPatch, path, map[string]any{"name": "hijack"}, token)
	require.Equal(t, http.StatusNotFound, w.Code)
}
