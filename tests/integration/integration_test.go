package integration_test

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/eminenthub/eminenthub-api/internal/config"
	"github.com/eminenthub/eminenthub-api/internal/database"
	"github.com/eminenthub/eminenthub-api/internal/handlers"
	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/eminenthub/eminenthub-api/tests/helpers"
	"github.com/gofiber/fiber/v2"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestWithMariaDB tests the service with a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	// Get container host and port
	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("AccountAndPortfolio", func(t *testing.T) {
		testAccountAndPortfolio(t, db)
	})

	t.Run("BlogSlugUniqueness", func(t *testing.T) {
		testBlogSlugUniqueness(t, db)
	})

	t.Run("JobOwnership", func(t *testing.T) {
		testJobOwnership(t, db)
	})

	t.Run("HandlerDuplicateSlug", func(t *testing.T) {
		testHandlerDuplicateSlug(t, db)
	})
}

// TestWithPostgreSQL tests the service with a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("POSTGRES_IMAGE"),
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	// Get container host and port
	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(2 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("AccountAndPortfolio", func(t *testing.T) {
		testAccountAndPortfolio(t, db)
	})

	t.Run("BlogSlugUniqueness", func(t *testing.T) {
		testBlogSlugUniqueness(t, db)
	})

	t.Run("JobOwnership", func(t *testing.T) {
		testJobOwnership(t, db)
	})
}

// testAccountAndPortfolio syncs an account and works the portfolio JSON columns
// through the row-locked update path.
func testAccountAndPortfolio(t *testing.T, db *gorm.DB) {
	email := "int-account@example.com"

	user, err := services.SyncUser(db, services.SyncUserInput{Email: email, DisplayName: "Integration"})
	if err != nil {
		t.Fatalf("Failed to sync user: %v", err)
	}
	if user.Email != email {
		t.Errorf("Expected synced email %s, got %s", email, user.Email)
	}

	// Sync again; same account comes back.
	again, err := services.SyncUser(db, services.SyncUserInput{Email: email})
	if err != nil {
		t.Fatalf("Failed to re-sync user: %v", err)
	}
	if again.UserID != user.UserID {
		t.Error("Re-sync created a second account")
	}

	entry, err := services.AddExperienceEntry(db, email, models.ExperienceEntry{Company: "Acme", Title: "Engineer"})
	if err != nil {
		t.Fatalf("Failed to add experience: %v", err)
	}
	if entry.ID == "" {
		t.Error("Expected a generated experience id")
	}

	entry.Title = "Staff Engineer"
	result, err := services.UpdateExperienceEntry(db, email, entry.ID, entry)
	if err != nil {
		t.Fatalf("Failed to update experience: %v", err)
	}
	if !result.Modified {
		t.Errorf("Expected update to modify, got %+v", result)
	}

	portfolio, err := services.GetPortfolio(db, email)
	if err != nil {
		t.Fatalf("Failed to get portfolio: %v", err)
	}

	var experience []models.ExperienceEntry
	if err := portfolio.Experience.Decode(&experience); err != nil {
		t.Fatalf("Failed to decode experience: %v", err)
	}
	if len(experience) != 1 || experience[0].Title != "Staff Engineer" {
		t.Errorf("Experience round trip failed: %+v", experience)
	}
}

// testBlogSlugUniqueness exercises the per-author slug constraint against a
// real unique index.
func testBlogSlugUniqueness(t *testing.T, db *gorm.DB) {
	helpers.CreateTestAccount(t, db, "int-author@example.com", models.RoleUser)
	helpers.CreateTestAccount(t, db, "int-other@example.com", models.RoleUser)

	input := services.BlogPostInput{Title: "Integration Post", Slug: "integration-post"}
	post, err := services.CreateBlogPost(db, "int-author@example.com", input)
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	// Same author, same slug.
	_, err = services.CreateBlogPost(db, "int-author@example.com", input)
	if err == nil || err.Error() != "duplicate slug" {
		t.Errorf("Expected duplicate slug error, got: %v", err)
	}

	// Different author, same slug is fine.
	if _, err := services.CreateBlogPost(db, "int-other@example.com", input); err != nil {
		t.Errorf("Cross-author slug rejected: %v", err)
	}

	// Slug lookup takes the index path on MariaDB.
	found, err := services.GetBlogPostBySlug(db, "integration-post")
	if err != nil {
		t.Fatalf("Failed to get post by slug: %v", err)
	}
	if found.PostID != post.PostID && found.Slug != post.Slug {
		t.Errorf("Slug lookup returned the wrong post: %+v", found)
	}
}

// testJobOwnership verifies caller scoping on the job tracker.
func testJobOwnership(t *testing.T, db *gorm.DB) {
	owner := "int-jobs@example.com"
	job, err := services.CreateJob(db, owner, services.JobInput{Company: "Initech", Role: "SRE"})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}

	if _, err := services.UpdateJob(db, job.JobID, "someone-else@example.com", services.JobInput{Status: models.JobStatusInterview}); err == nil || err.Error() != "forbidden" {
		t.Errorf("Expected forbidden for non-owner update, got: %v", err)
	}

	updated, err := services.UpdateJob(db, job.JobID, owner, services.JobInput{Status: models.JobStatusInterview})
	if err != nil {
		t.Fatalf("Failed to update job: %v", err)
	}
	if updated.Status != models.JobStatusInterview {
		t.Errorf("Expected interview status, got %s", updated.Status)
	}

	jobs, err := services.ListJobs(db, owner)
	if err != nil {
		t.Fatalf("Failed to list jobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Errorf("Expected 1 job for owner, got %d", len(jobs))
	}
}

// TestHealthCheck tests the health check functionality
func TestHealthCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:     "mysql",
		DBHost:     host,
		DBPort:     port.Port(),
		DBDatabase: "testdb",
		DBUser:     "testuser",
		DBPassword: "testpass",
		AuthzURL:   "http://localhost:9999", // Non-existent service
	}

	time.Sleep(5 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run health check
	result := services.HealthCheck(cfg, db)

	// Database should be healthy
	if result.Database != "ok" {
		t.Errorf("Expected database to be ok, got: %s", result.Database)
	}

	// Authorizer should be unreachable
	if result.Authorizer != "unreachable" {
		t.Errorf("Expected authorizer to be unreachable, got: %s", result.Authorizer)
	}

	// Overall status should be unhealthy
	if result.Status != "unhealthy" {
		t.Errorf("Expected status to be unhealthy, got: %s", result.Status)
	}
}

// testHandlerDuplicateSlug verifies the 409 mapping against a real database
func testHandlerDuplicateSlug(t *testing.T, db *gorm.DB) {
	author := "int-handler@example.com"
	helpers.CreateTestAccount(t, db, author, models.RoleUser)
	helpers.CreateTestBlogPost(t, db, author, "int-handler-post", nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("email", author)
		c.Locals("role", models.RoleUser)
		return c.Next()
	})
	handler := handlers.NewBlogHandler(db)
	app.Post("/api/blog", handler.CreatePost)

	body := strings.NewReader(`{"title":"Int Handler Post","slug":"int-handler-post"}`)
	req := httptest.NewRequest("POST", "/api/blog", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 409)
}
