package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/eminenthub/eminenthub-api/internal/handlers"
	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/tests/helpers"
	"github.com/gofiber/fiber/v2"
)

func TestCreatePostEndpoint(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	app.Use(mockAuth("jane@example.com", models.RoleUser))
	handler := handlers.NewBlogHandler(db)
	app.Post("/api/blog", handler.CreatePost)

	req := httptest.NewRequest("POST", "/api/blog", jsonBody(t, map[string]interface{}{
		"title": "Hello World",
		"tags":  []string{"go"},
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var created struct {
		ID string `json:"id"`
		Ok bool   `json:"ok"`
	}
	helpers.ParseJSON(t, resp, &created)
	if !created.Ok || created.ID == "" {
		t.Errorf("Unexpected created response: %+v", created)
	}
}

func TestCreatePostEndpoint_DuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestBlogPost(t, db, "jane@example.com", "hello-world", nil)

	app := fiber.New()
	app.Use(mockAuth("jane@example.com", models.RoleUser))
	handler := handlers.NewBlogHandler(db)
	app.Post("/api/blog", handler.CreatePost)

	req := httptest.NewRequest("POST", "/api/blog", jsonBody(t, map[string]interface{}{
		"title": "Hello World",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 409)
}

func TestUpdatePostEndpoint_NonAuthor(t *testing.T) {
	db := setupTestDB(t)
	postID := helpers.CreateTestBlogPost(t, db, "jane@example.com", "mine", nil)

	app := fiber.New()
	app.Use(mockAuth("mallory@example.com", models.RoleUser))
	handler := handlers.NewBlogHandler(db)
	app.Put("/api/blog/:id", handler.UpdatePost)

	req := httptest.NewRequest("PUT", "/api/blog/"+postID, jsonBody(t, map[string]interface{}{
		"title": "Stolen",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 403)
}

func TestGetPostEndpoint(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestBlogPost(t, db, "jane@example.com", "findable", []string{"go"})

	app := fiber.New()
	handler := handlers.NewBlogHandler(db)
	app.Get("/api/blog/:slug", handler.GetPost)

	req := httptest.NewRequest("GET", "/api/blog/findable", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	req = httptest.NewRequest("GET", "/api/blog/missing", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

func TestListPostsEndpoint_TagFilter(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestBlogPost(t, db, "jane@example.com", "go-post", []string{"go"})
	helpers.CreateTestBlogPost(t, db, "jane@example.com", "rust-post", []string{"rust"})

	app := fiber.New()
	handler := handlers.NewBlogHandler(db)
	app.Get("/api/blog", handler.ListPosts)

	req := httptest.NewRequest("GET", "/api/blog?tags=go", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var posts []models.BlogPost
	helpers.ParseJSON(t, resp, &posts)
	if len(posts) != 1 || posts[0].Slug != "go-post" {
		t.Errorf("Tag filter failed: %+v", posts)
	}
}

func TestDeletePostEndpoint_AdminOverride(t *testing.T) {
	db := setupTestDB(t)
	postID := helpers.CreateTestBlogPost(t, db, "jane@example.com", "doomed", nil)

	app := fiber.New()
	app.Use(mockAuth("admin@example.com", models.RoleAdmin))
	handler := handlers.NewBlogHandler(db)
	app.Delete("/api/blog/:id", handler.DeletePost)

	req := httptest.NewRequest("DELETE", "/api/blog/"+postID, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
}
