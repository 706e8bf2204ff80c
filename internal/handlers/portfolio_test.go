package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/eminenthub/eminenthub-api/internal/handlers"
	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/tests/helpers"
	"github.com/gofiber/fiber/v2"
)

func TestAddExperienceEndpoint(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestAccount(t, db, "jane@example.com", models.RoleUser)

	app := fiber.New()
	app.Use(mockAuth("jane@example.com", models.RoleUser))
	handler := handlers.NewPortfolioHandler(db)
	app.Post("/api/portfolio/experience/add", handler.AddExperience)

	req := httptest.NewRequest("POST", "/api/portfolio/experience/add", jsonBody(t, map[string]interface{}{
		"company": "Acme",
		"title":   "Engineer",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var created struct {
		ID string `json:"id"`
	}
	helpers.ParseJSON(t, resp, &created)
	if created.ID == "" {
		t.Error("Expected a generated id in the response")
	}
}

func TestRemoveExperienceEndpoint_MissingElement(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestAccount(t, db, "jane@example.com", models.RoleUser)

	app := fiber.New()
	app.Use(mockAuth("jane@example.com", models.RoleUser))
	handler := handlers.NewPortfolioHandler(db)
	app.Delete("/api/portfolio/experience/:id", handler.RemoveExperience)

	req := httptest.NewRequest("DELETE", "/api/portfolio/experience/no-such-id", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result struct {
		Matched  bool `json:"matched"`
		Modified bool `json:"modified"`
	}
	helpers.ParseJSON(t, resp, &result)
	if !result.Matched || result.Modified {
		t.Errorf("Expected matched without modified, got %+v", result)
	}
}

func TestRemoveExperienceEndpoint_MissingPortfolio(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	app.Use(mockAuth("ghost@example.com", models.RoleUser))
	handler := handlers.NewPortfolioHandler(db)
	app.Delete("/api/portfolio/experience/:id", handler.RemoveExperience)

	req := httptest.NewRequest("DELETE", "/api/portfolio/experience/some-id", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

func TestUpdatePortfolioEndpoint_NonOwner(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestAccount(t, db, "jane@example.com", models.RoleUser)

	app := fiber.New()
	app.Use(mockAuth("mallory@example.com", models.RoleUser))
	handler := handlers.NewPortfolioHandler(db)
	app.Put("/api/portfolio/:email", handler.UpdatePortfolio)

	req := httptest.NewRequest("PUT", "/api/portfolio/jane@example.com", jsonBody(t, map[string]interface{}{
		"title": "Hijacked",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 403)
}

func TestAddSkillEndpoint(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestAccount(t, db, "jane@example.com", models.RoleUser)

	app := fiber.New()
	app.Use(mockAuth("jane@example.com", models.RoleUser))
	handler := handlers.NewPortfolioHandler(db)
	app.Post("/api/portfolio/skills/add", handler.AddSkill)
	app.Get("/api/portfolio/:email", handler.GetPortfolio)

	req := httptest.NewRequest("POST", "/api/portfolio/skills/add", jsonBody(t, map[string]interface{}{
		"category": "Languages",
		"item":     "Go",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	// Round trip: the item appears exactly once.
	req = httptest.NewRequest("GET", "/api/portfolio/jane@example.com", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var portfolio models.Portfolio
	helpers.ParseJSON(t, resp, &portfolio)

	var groups []models.SkillGroup
	if err := portfolio.Skills.Decode(&groups); err != nil {
		t.Fatalf("Failed to decode skills: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Items) != 1 || groups[0].Items[0] != "Go" {
		t.Errorf("Skill round trip failed: %+v", groups)
	}
}

func TestGetPortfolioEndpoint_Public(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestAccount(t, db, "jane@example.com", models.RoleUser)

	app := fiber.New()
	handler := handlers.NewPortfolioHandler(db)
	app.Get("/api/portfolio/:email", handler.GetPortfolio)

	// No auth middleware; the read is public.
	req := httptest.NewRequest("GET", "/api/portfolio/jane@example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	req = httptest.NewRequest("GET", "/api/portfolio/ghost@example.com", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}
