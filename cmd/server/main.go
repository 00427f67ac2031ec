package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/supplychainlens/monitoring-api/internal/auth"
	"github.com/supplychainlens/monitoring-api/internal/config"
	"github.com/supplychainlens/monitoring-api/internal/database"
	"github.com/supplychainlens/monitoring-api/internal/handlers"
	"github.com/supplychainlens/monitoring-api/internal/middleware"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/ratelimit"
	"github.com/supplychainlens/monitoring-api/internal/repository"
	"github.com/supplychainlens/monitoring-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Token manager for credential issuance and validation
	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	// Login rate limiter: redis when configured, in-process otherwise
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		limiter, err = ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
	} else {
		limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{})
	}

	// Repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	authService := services.NewAuthService(userRepo, sessionRepo, tokens, cfg.SessionTTL)
	orgService := services.NewOrganizationService(orgRepo)
	supplierService := services.NewSupplierService(supplierRepo)
	alertService := services.NewAlertService(alertRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, orgService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	zoneHandler := handlers.NewZoneHandler()
	alertHandler := handlers.NewAlertHandler(alertService)
	reportHandler := handlers.NewReportHandler()
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	mlHandler := handlers.NewMLHandler()

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "SupplyChainLens API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", middleware.LoginRateLimit(limiter, cfg.LoginRateLimit, cfg.LoginRateWindow), authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", authMiddleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(authMiddleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.POST("/join", orgHandler.JoinOrganization)
			orgs.GET("/:id", middleware.RequireOrganizationAccess(), orgHandler.GetOrganization)
			orgs.PUT("/:id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.DeleteOrganization)
			orgs.POST("/:id/regenerate-code", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.RegenerateInviteCode)
			orgs.POST("/:id/leave", middleware.RequireOrganizationAccess(), orgHandler.LeaveOrganization)
			orgs.PATCH("/:id/members/:user_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.UpdateMemberRole)
			orgs.DELETE("/:id/members/:user_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.RemoveMember)
			orgs.GET("/:id/dashboard", middleware.RequireOrganizationAccess(), dashboardHandler.GetDashboard)
		}

		// Supplier routes (protected)
		suppliers := api.Group("/suppliers")
		suppliers.Use(authMiddleware.RequireAuth())
		{
			suppliers.GET("", supplierHandler.ListSuppliers)
			suppliers.POST("", supplierHandler.CreateSupplier)
			suppliers.GET("/:id", middleware.RequireSupplierAccess(), supplierHandler.GetSupplier)
			suppliers.PATCH("/:id", middleware.RequireSupplierAccess(), middleware.RequireOrganizationRole(models.RoleOwner, models.RoleAdmin), supplierHandler.UpdateSupplier)
			suppliers.DELETE("/:id", middleware.RequireSupplierAccess(), middleware.RequireOrganizationRole(models.RoleOwner, models.RoleAdmin), supplierHandler.DeleteSupplier)

			// Monitoring zones nested under a supplier
			suppliers.GET("/:id/zones", middleware.RequireSupplierAccess(), zoneHandler.ListZones)
			suppliers.POST("/:id/zones", middleware.RequireSupplierAccess(), middleware.RequireOrganizationRole(models.RoleOwner, models.RoleAdmin), zoneHandler.CreateZone)
			suppliers.PATCH("/:id/zones/:zone_id", middleware.RequireSupplierAccess(), middleware.RequireOrganizationRole(models.RoleOwner, models.RoleAdmin), zoneHandler.UpdateZone)
			suppliers.DELETE("/:id/zones/:zone_id", middleware.RequireSupplierAccess(), middleware.RequireOrganizationRole(models.RoleOwner, models.RoleAdmin), zoneHandler.DeleteZone)
		}

		// Alert routes (protected)
		alerts := api.Group("/alerts")
		alerts.Use(authMiddleware.RequireAuth())
		{
			alerts.GET("", alertHandler.ListAlerts)
			alerts.GET("/:id", alertHandler.GetAlert)
			alerts.PATCH("/:id/read", alertHandler.MarkAlertRead)
			alerts.DELETE("/:id", alertHandler.DeleteAlert)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(authMiddleware.RequireAuth())
		{
			reports.GET("", reportHandler.ListReports)
			reports.POST("", reportHandler.CreateReport)
			reports.GET("/:id", reportHandler.GetReport)
		}

		// ML pipeline ingest (global admin only)
		ml := api.Group("/ml")
		ml.Use(authMiddleware.RequireAuth(), middleware.RequireRole(models.GlobalRoleAdmin))
		{
			ml.POST("/detections", mlHandler.IngestDetections)
			ml.POST("/risk-assessments", mlHandler.IngestRiskAssessment)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
