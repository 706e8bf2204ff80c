package handlers_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/eminenthub/eminenthub-api/internal/middleware"
	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with all tables
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Portfolio{},
		&models.BlogPost{},
		&models.Job{},
		&models.Testimonial{},
		&models.ContactMessage{},
		&models.FeatureRequest{},
		&models.UpdateLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// mockAuth injects the caller identity the auth guard would have set
func mockAuth(email, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalEmail, email)
		c.Locals(middleware.LocalRole, role)
		return c.Next()
	}
}

// jsonBody encodes a request body
func jsonBody(t *testing.T, body interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	return bytes.NewReader(raw)
}
