package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/eminenthub/eminenthub-api/internal/handlers"
	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/eminenthub/eminenthub-api/tests/helpers"
	"github.com/gofiber/fiber/v2"
)

func TestSyncUserEndpoint(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	app.Use(mockAuth("jane@example.com", models.RoleUser))
	handler := handlers.NewUserHandler(db)
	app.Post("/api/users/sync", handler.SyncUser)

	req := httptest.NewRequest("POST", "/api/users/sync", jsonBody(t, map[string]string{
		"email":       "spoofed@example.com",
		"displayName": "Jane",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var user models.User
	helpers.ParseJSON(t, resp, &user)

	// The payload email must not override the verified identity.
	if user.Email != "jane@example.com" {
		t.Errorf("Account created for payload email %q", user.Email)
	}
}

func TestGetUserEndpoint_OtherAccountForbidden(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestAccount(t, db, "jane@example.com", models.RoleUser)
	helpers.CreateTestAccount(t, db, "john@example.com", models.RoleUser)

	app := fiber.New()
	app.Use(mockAuth("jane@example.com", models.RoleUser))
	handler := handlers.NewUserHandler(db)
	app.Get("/api/users/:email", handler.GetUser)

	req := httptest.NewRequest("GET", "/api/users/john@example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 403)

	// Self read works.
	req = httptest.NewRequest("GET", "/api/users/jane@example.com", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
}

func TestGetUserEndpoint_AdminReadsAnyone(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestAccount(t, db, "admin@example.com", models.RoleAdmin)
	helpers.CreateTestAccount(t, db, "john@example.com", models.RoleUser)

	app := fiber.New()
	app.Use(mockAuth("admin@example.com", models.RoleAdmin))
	handler := handlers.NewUserHandler(db)
	app.Get("/api/users/:email", handler.GetUser)

	req := httptest.NewRequest("GET", "/api/users/john@example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
}

func TestSwitchRoleEndpoint_UnavailableRole(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	app := fiber.New()
	app.Use(mockAuth("jane@example.com", models.RoleUser))
	handler := handlers.NewUserHandler(db)
	app.Patch("/api/users/:email/role", handler.SwitchRole)

	req := httptest.NewRequest("PATCH", "/api/users/jane@example.com/role", jsonBody(t, map[string]string{
		"role": models.RoleAdmin,
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
}

func TestListUsersEndpoint(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestAccount(t, db, "jane@example.com", models.RoleUser)
	helpers.CreateTestAccount(t, db, "john@example.com", models.RoleUser)

	app := fiber.New()
	app.Use(mockAuth("admin@example.com", models.RoleAdmin))
	handler := handlers.NewUserHandler(db)
	app.Get("/api/users/admin", handler.ListUsers)

	req := httptest.NewRequest("GET", "/api/users/admin", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var users []models.User
	helpers.ParseJSON(t, resp, &users)
	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}
}
