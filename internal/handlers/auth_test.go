package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokens      *auth.TokenManager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Organization{},
		&models.OrganizationMember{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	tokens, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	authService := services.NewAuthService(userRepo, sessionRepo, tokens, time.Hour)
	orgService := services.NewOrganizationService(orgRepo)
	handler := NewAuthHandler(authService, orgService)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", authMiddleware.RequireAuth(), handler.GetCurrentUser)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		tokens:      tokens,
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "new@example.com",
		"password": "supersecret",
		"name":     "New User",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "new@example.com", response.User.Email)
	require.NotEmpty(t, response.Token)

	// The first token must work immediately.
	me := doJSON(t, env.router, http.MethodGet, "/api/auth/me", nil, response.Token)
	require.Equal(t, http.StatusOK, me.Code)

	// Registration created a personal organization owned by the user.
	var profile dto.ProfileResponse
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &profile))
	require.Len(t, profile.Organizations, 1)
	require.Equal(t, models.RoleOwner, profile.Organizations[0].Role)
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"email":    "taken@example.com",
		"password": "supersecret",
		"name":     "First",
	}
	w := doJSON(t, env.router, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusCreated, w.Code)

	payload["name"] = "Second"
	w = doJSON(t, env.router, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_RegisterShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "short@example.com",
		"password": "short",
		"name":     "Shorty",
	}, "")

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
		Name:     "Existing",
	})
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrongpassword",
	}, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginUnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	}, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LogoutRevokesToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, creds, err := env.authService.Register(services.RegisterInput{
		Email:    "leaver@example.com",
		Password: "supersecret",
		Name:     "Leaver",
	})
	require.NoError(t, err)

	me := doJSON(t, env.router, http.MethodGet, "/api/auth/me", nil, creds.Token)
	require.Equal(t, http.StatusOK, me.Code)

	out := doJSON(t, env.router, http.MethodPost, "/api/auth/logout", nil, creds.Token)
	require.Equal(t, http.StatusOK, out.Code)

	// The signature is still valid but the session row is gone: replaying
	// the token must fail.
	replay := doJSON(t, env.router, http.MethodGet, "/api/auth/me", nil, creds.Token)
	require.Equal(t, http.StatusUnauthorized, replay.Code)
}

func TestAuthHandler_ExpiredSessionRejected(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, creds, err := env.authService.Register(services.RegisterInput{
		Email:    "stale@example.com",
		Password: "supersecret",
		Name:     "Stale",
	})
	require.NoError(t, err)

	// Expire the session row without touching the token claims.
	err = env.db.Model(&models.Session{}).
		Where("token_hash = ?", auth.HashToken(creds.Token)).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodGet, "/api/auth/me", nil, creds.Token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_TruncatedTokenRejected(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, creds, err := env.authService.Register(services.RegisterInput{
		Email:    "trunc@example.com",
		Password: "supersecret",
		Name:     "Trunc",
	})
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodGet, "/api/auth/me", nil, creds.Token[:len(creds.Token)-5])
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
