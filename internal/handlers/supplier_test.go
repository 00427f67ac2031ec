package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/supplychainlens/monitoring-api/internal/auth"
	"github.com/supplychainlens/monitoring-api/internal/database"
	"github.com/supplychainlens/monitoring-api/internal/dto"
	"github.com/supplychainlens/monitoring-api/internal/middleware"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/repository"
	"github.com/supplychainlens/monitoring-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// apiTestEnv wires the full supplier/alert surface against an in-memory
// database. Users are created directly with live sessions.
type apiTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager
}

func setupAPITestEnv(t *testing.T) apiTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Supplier{},
		&models.MonitoringZone{},
		&models.Alert{},
		&models.Report{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	tokens, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)

	supplierService := services.NewSupplierService(repository.NewSupplierRepository(db))
	alertService := services.NewAlertService(repository.NewAlertRepository(db))
	orgService := services.NewOrganizationService(repository.NewOrganizationRepository(db))
	supplierHandler := NewSupplierHandler(supplierService)
	alertHandler := NewAlertHandler(alertService)
	orgHandler := NewOrganizationHandler(orgService)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := gin.New()
	orgs := r.Group("/api/organizations", authMiddleware.RequireAuth())
	{
		orgs.POST("", orgHandler.CreateOrganization)
		orgs.GET("", orgHandler.ListOrganizations)
		orgs.POST("/join", orgHandler.JoinOrganization)
		orgs.GET("/:id", middleware.RequireOrganizationAccess(), orgHandler.GetOrganization)
		orgs.POST("/:id/leave", middleware.RequireOrganizationAccess(), orgHandler.LeaveOrganization)
		orgs.PATCH("/:id/members/:user_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.UpdateMemberRole)
		orgs.DELETE("/:id/members/:user_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.RemoveMember)
	}
	zoneHandler := NewZoneHandler()
	suppliers := r.Group("/api/suppliers", authMiddleware.RequireAuth())
	{
		suppliers.GET("", supplierHandler.ListSuppliers)
		suppliers.POST("", supplierHandler.CreateSupplier)
		suppliers.GET("/:id", middleware.RequireSupplierAccess(), supplierHandler.GetSupplier)
		suppliers.GET("/:id/zones", middleware.RequireSupplierAccess(), zoneHandler.ListZones)
		suppliers.POST("/:id/zones", middleware.RequireSupplierAccess(), middleware.RequireOrganizationRole(models.RoleOwner, models.RoleAdmin), zoneHandler.CreateZone)
		suppliers.PATCH("/:id/zones/:zone_id", middleware.RequireSupplierAccess(), middleware.RequireOrganizationRole(models.RoleOwner, models.RoleAdmin), zoneHandler.UpdateZone)
	}
	alerts := r.Group("/api/alerts", authMiddleware.RequireAuth())
	{
		alerts.GET("", alertHandler.ListAlerts)
		alerts.GET("/:id", alertHandler.GetAlert)
		alerts.PATCH("/:id/read", alertHandler.MarkAlertRead)
		alerts.DELETE("/:id", alertHandler.DeleteAlert)
	}
	reportHandler := NewReportHandler()
	reports := r.Group("/api/reports", authMiddleware.RequireAuth())
	{
		reports.GET("", reportHandler.ListReports)
		reports.POST("", reportHandler.CreateReport)
		reports.GET("/:id", reportHandler.GetReport)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return apiTestEnv{db: db, router: r, tokens: tokens}
}

// createUserWithSession inserts a user and a live session, returning the token.
func (env apiTestEnv) createUserWithSession(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         email,
		Role:         models.GlobalRoleUser,
		IsActive:     true,
	}
	require.NoError(t, env.db.Create(&user).Error)

	token, err := env.tokens.Generate(user.ID, user.Email, time.Hour)
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.Session{
		UserID:    user.ID,
		TokenHash: auth.HashToken(token),
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	return &user, token
}

func (env apiTestEnv) createOrgWithMember(t *testing.T, name string, userID uint64, role models.OrganizationRole) models.Organization {
	t.Helper()

	org := models.Organization{Name: name, InviteCode: name}
	require.NoError(t, env.db.Create(&org).Error)
	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           role,
		JoinedAt:       time.Now(),
	}).Error)
	return org
}

func TestSupplierHandler_ListScopedToMemberships(t *testing.T) {
	env := setupAPITestEnv(t)

	userA, tokenA := env.createUserWithSession(t, "lista@example.com")
	userB, _ := env.createUserWithSession(t, "listb@example.com")

	orgA := env.createOrgWithMember(t, "list-org-a", userA.ID, models.RoleMember)
	orgB := env.createOrgWithMember(t, "list-org-b", userB.ID, models.RoleMember)

	require.NoError(t, env.db.Create(&models.Supplier{OrganizationID: orgA.ID, Name: "Visible", Status: models.SupplierStatusActive}).Error)
	require.NoError(t, env.db.Create(&models.Supplier{OrganizationID: orgB.ID, Name: "Hidden", Status: models.SupplierStatusActive}).Error)

	w := doJSON(t, env.router, http.MethodGet, "/api/suppliers", nil, tokenA)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.SupplierListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Suppliers, 1)
	require.Equal(t, "Visible", response.Suppliers[0].Name)
	require.Equal(t, int64(1), response.TotalCount)
}

func TestSupplierHandler_ListWithZeroMembershipsIsEmpty(t *testing.T) {
	env := setupAPITestEnv(t)

	_, token := env.createUserWithSession(t, "loner@example.com")

	other := models.Organization{Name: "not-mine", InviteCode: "not-mine"}
	require.NoError(t, env.db.Create(&other).Error)
	require.NoError(t, env.db.Create(&models.Supplier{OrganizationID: other.ID, Name: "Unreachable", Status: models.SupplierStatusActive}).Error)

	w := doJSON(t, env.router, http.MethodGet, "/api/suppliers", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.SupplierListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Empty(t, response.Suppliers)
	require.Equal(t, int64(0), response.TotalCount)
}

func TestSupplierHandler_ExplicitForeignOrganizationIs403(t *testing.T) {
	env := setupAPITestEnv(t)

	userA, tokenA := env.createUserWithSession(t, "expa@example.com")
	userB, _ := env.createUserWithSession(t, "expb@example.com")

	env.createOrgWithMember(t, "exp-org-a", userA.ID, models.RoleMember)
	orgB := env.createOrgWithMember(t, "exp-org-b", userB.ID, models.RoleMember)

	w := doJSON(t, env.router, http.MethodGet, "/api/suppliers?organization_id="+strconv.FormatUint(orgB.ID, 10), nil, tokenA)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestSupplierHandler_CreateRequiresManagingRole(t *testing.T) {
	env := setupAPITestEnv(t)

	viewer, viewerToken := env.createUserWithSession(t, "createviewer@example.com")
	org := env.createOrgWithMember(t, "create-org", viewer.ID, models.RoleViewer)

	payload := map[string]any{
		"organization_id": org.ID,
		"name":            "New Supplier",
		"country":         "BR",
	}

	w := doJSON(t, env.router, http.MethodPost, "/api/suppliers", payload, viewerToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	admin, adminToken := env.createUserWithSession(t, "createadmin@example.com")
	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: org.ID, UserID: admin.ID, Role: models.RoleAdmin, JoinedAt: time.Now(),
	}).Error)

	w = doJSON(t, env.router, http.MethodPost, "/api/suppliers", payload, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.SupplierDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, org.ID, created.OrganizationID)
	require.Equal(t, models.SupplierStatusActive, created.Status)
}
