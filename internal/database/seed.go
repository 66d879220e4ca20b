package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const demoPassword = "password"

// SeedDemoData inserts the sample citizens, reports and authority team used by
// the demo dashboard. Existing rows with the same IDs are left alone.
func SeedDemoData(db *gorm.DB, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := []models.User{
		{ID: "user-1", Username: "MarineSafety", Email: "marine@safety.com", PasswordHash: string(hash), CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "user-2", Username: "CoastGuard", Email: "coast@guard.com", PasswordHash: string(hash), CreatedAt: now.Add(-48 * time.Hour)},
	}

	reports := []models.HazardReport{
		{
			ID:          "report-1",
			UserID:      "user-1",
			Description: "Strong rip current observed near Marina Beach. Multiple swimmers have been rescued.",
			Latitude:    13.0542,
			Longitude:   80.2825,
			Location:    strPtr("13.0542, 80.2825"),
			CreatedAt:   now.Add(-1 * time.Hour),
		},
		{
			ID:          "report-2",
			UserID:      "user-2",
			Description: "Oil spill detected in Bay of Bengal near Ennore Port. Immediate cleanup required.",
			Latitude:    13.2846,
			Longitude:   80.3371,
			Location:    strPtr("13.2846, 80.3371"),
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			ID:          "report-3",
			UserID:      "user-1",
			Description: "Plastic debris and fishing nets washed up on Besant Nagar Beach.",
			Latitude:    13.0067,
			Longitude:   80.2669,
			Location:    strPtr("13.0067, 80.2669"),
			CreatedAt:   now.Add(-3 * time.Hour),
		},
	}

	team := []models.TeamMember{
		demoMember("admin-1", "Sarah Johnson", "sarah@authority.gov", models.RoleAdmin, true, 13.0827, 80.2707, now, now),
		demoMember("admin-2", "Mike Chen", "mike@authority.gov", models.RoleSupervisor, true, 13.0900, 80.2800, now, now),
		demoMember("admin-3", "Lisa Rodriguez", "lisa@authority.gov", models.RoleFieldOfficer, false, 13.0750, 80.2650, now, now.Add(-1*time.Hour)),
		demoMember("admin-4", "David Park", "david@authority.gov", models.RoleFieldOfficer, true, 13.0950, 80.2900, now, now),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&reports).Error; err != nil {
			return fmt.Errorf("seed reports: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&team).Error; err != nil {
			return fmt.Errorf("seed team: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("users", len(users)).
		Int("reports", len(reports)).
		Int("team", len(team)).
		Msg("Demo data seeded")
	return nil
}

func demoMember(id, name, email string, role models.TeamRole, online bool, lat, lng float64, createdAt, lastActive time.Time) models.TeamMember {
	m := models.TeamMember{
		ID:           id,
		Name:         name,
		Email:        email,
		Role:         role,
		IsOnline:     online,
		CreatedAt:    createdAt,
		LastActiveAt: lastActive,
	}
	m.SetLocation(&models.GeoPoint{Lat: lat, Lng: lng})
	return m
}

func strPtr(s string) *string {
	return &s
}
