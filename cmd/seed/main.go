package main

import (
	"log"
	"time"

	"github.com/supplychainlens/monitoring-api/internal/config"
	"github.com/supplychainlens/monitoring-api/internal/database"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Seeds a demo organization with users in every role, a handful of
// suppliers with zones, alerts and risk history. Intended for development
// databases only; it refuses to run against a non-empty users table.
func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		log.Fatalf("Failed to inspect database: %v", err)
	}
	if userCount > 0 {
		log.Fatal("Database already contains users, refusing to seed")
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		log.Fatalf("Failed to generate invite code: %v", err)
	}

	org := models.Organization{
		Name:        "Verdant Trading Co",
		Description: "Demo organization for local development",
		Industry:    "Agriculture",
		InviteCode:  inviteCode,
		Metadata:    datatypes.JSONMap{"seeded": true},
	}
	if err := db.Create(&org).Error; err != nil {
		log.Fatalf("Failed to create organization: %v", err)
	}

	users := []struct {
		email string
		name  string
		role  models.GlobalRole
		org   models.OrganizationRole
	}{
		{"owner@example.com", "Olivia Owner", models.GlobalRoleUser, models.RoleOwner},
		{"admin@example.com", "Adrian Admin", models.GlobalRoleUser, models.RoleAdmin},
		{"member@example.com", "Mika Member", models.GlobalRoleUser, models.RoleMember},
		{"viewer@example.com", "Vera Viewer", models.GlobalRoleUser, models.RoleViewer},
		{"pipeline@example.com", "ML Pipeline", models.GlobalRoleAdmin, models.RoleViewer},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 12)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	for _, u := range users {
		user := models.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		}

		member := models.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         user.ID,
			Role:           u.org,
			JoinedAt:       time.Now(),
		}
		if err := db.Create(&member).Error; err != nil {
			log.Fatalf("Failed to add member %s: %v", u.email, err)
		}
	}

	riskScore := func(v float64) *float64 { return &v }

	suppliers := []models.Supplier{
		{
			OrganizationID: org.ID,
			Name:           "Rio Verde Palm Estate",
			Country:        "BR",
			Industry:       "Palm Oil",
			Status:         models.SupplierStatusActive,
			RiskScore:      riskScore(0.31),
		},
		{
			OrganizationID: org.ID,
			Name:           "Kalimantan Timber Works",
			Country:        "ID",
			Industry:       "Timber",
			Status:         models.SupplierStatusFlagged,
			RiskScore:      riskScore(0.84),
		},
		{
			OrganizationID: org.ID,
			Name:           "Andes Cobalt Partners",
			Country:        "PE",
			Industry:       "Mining",
			Status:         models.SupplierStatusActive,
			RiskScore:      riskScore(0.52),
		},
	}
	for i := range suppliers {
		if err := db.Create(&suppliers[i]).Error; err != nil {
			log.Fatalf("Failed to create supplier: %v", err)
		}
	}

	flagged := suppliers[1]

	zone := models.MonitoringZone{
		SupplierID: flagged.ID,
		Name:       "Concession block C-14",
		ZoneType:   models.ZoneTypeDeforestation,
		Geometry:   datatypes.JSON([]byte(`{"type":"Point","coordinates":[113.92,-1.68]}`)),
		IsActive:   true,
	}
	if err := db.Create(&zone).Error; err != nil {
		log.Fatalf("Failed to create monitoring zone: %v", err)
	}

	detection := models.Detection{
		ZoneID:     zone.ID,
		Type:       models.DetectionTypeDeforestation,
		Confidence: 0.93,
		AreaHa:     14.6,
		DetectedAt: time.Now().AddDate(0, 0, -3),
	}
	if err := db.Create(&detection).Error; err != nil {
		log.Fatalf("Failed to create detection: %v", err)
	}

	alert := models.Alert{
		OrganizationID: org.ID,
		SupplierID:     &flagged.ID,
		ZoneID:         &zone.ID,
		AlertType:      "detection",
		Severity:       models.AlertSeverityHigh,
		Title:          "New deforestation detection",
		Message:        "High-confidence detection in zone Concession block C-14",
	}
	if err := db.Create(&alert).Error; err != nil {
		log.Fatalf("Failed to create alert: %v", err)
	}

	for i := 0; i < 4; i++ {
		assessment := models.RiskAssessment{
			SupplierID:         flagged.ID,
			OverallScore:       0.6 + float64(i)*0.08,
			DeforestationScore: 0.7 + float64(i)*0.07,
			MiningScore:        0.2,
			LaborScore:         0.4,
			AssessedAt:         time.Now().AddDate(0, -3+i, 0),
		}
		if err := db.Create(&assessment).Error; err != nil {
			log.Fatalf("Failed to create risk assessment: %v", err)
		}
	}

	log.Printf("Seeded organization %q (invite code %s) with %d users and %d suppliers",
		org.Name, org.InviteCode, len(users), len(suppliers))
}
