package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/eminenthub/eminenthub-api/internal/config"
	"github.com/eminenthub/eminenthub-api/internal/database"
	"github.com/eminenthub/eminenthub-api/internal/handlers"
	"github.com/eminenthub/eminenthub-api/internal/middleware"
	"github.com/eminenthub/eminenthub-api/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	_ "github.com/eminenthub/eminenthub-api/docs/api" // Swagger docs
)

// @title Eminent Hub API
// @version 1.0.0
// @description Go Fiber backend for professional profiles, portfolios, blogs and job tracking
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/eminenthub/eminenthub-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load .env when present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("eminenthub")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Auth guards
	authUser := middleware.AuthUser(cfg, db)
	authAdmin := middleware.AuthAdmin(cfg, db)

	// Create handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	portfolioHandler := handlers.NewPortfolioHandler(db)
	blogHandler := handlers.NewBlogHandler(db)
	jobHandler := handlers.NewJobHandler(db)
	communityHandler := handlers.NewCommunityHandler(db, cfg)

	// Health
	api.Get("/health", healthHandler.GetHealth)

	// Accounts
	users := api.Group("/users")
	users.Post("/sync", authUser, userHandler.SyncUser)
	users.Get("/admin", authAdmin, userHandler.ListUsers)
	users.Get("/:email", authUser, userHandler.GetUser)
	users.Put("/:email", authUser, userHandler.UpdateUser)
	users.Patch("/:email/role", authUser, userHandler.SwitchRole)

	// Portfolios (public read, owner mutations)
	portfolio := api.Group("/portfolio")
	portfolio.Post("/social/add", authUser, portfolioHandler.AddSocialLink)
	portfolio.Delete("/social/:name", authUser, portfolioHandler.RemoveSocialLink)
	portfolio.Post("/experience/add", authUser, portfolioHandler.AddExperience)
	portfolio.Put("/experience/:id", authUser, portfolioHandler.UpdateExperience)
	portfolio.Delete("/experience/:id", authUser, portfolioHandler.RemoveExperience)
	portfolio.Post("/education/add", authUser, portfolioHandler.AddEducation)
	portfolio.Put("/education/:id", authUser, portfolioHandler.UpdateEducation)
	portfolio.Delete("/education/:id", authUser, portfolioHandler.RemoveEducation)
	portfolio.Post("/projects/add", authUser, portfolioHandler.AddProject)
	portfolio.Put("/projects/:id", authUser, portfolioHandler.UpdateProject)
	portfolio.Delete("/projects/:id", authUser, portfolioHandler.RemoveProject)
	portfolio.Post("/skills/add", authUser, portfolioHandler.AddSkill)
	portfolio.Delete("/skills/:category/items", authUser, portfolioHandler.RemoveSkill)
	portfolio.Delete("/skills/:category", authUser, portfolioHandler.RemoveSkillCategory)
	portfolio.Get("/:email", portfolioHandler.GetPortfolio)
	portfolio.Put("/:email", authUser, portfolioHandler.UpdatePortfolio)

	// Blog (public reads, authed writes)
	blog := api.Group("/blog")
	blog.Get("/", blogHandler.ListPosts)
	blog.Post("/", authUser, blogHandler.CreatePost)
	blog.Get("/:slug", blogHandler.GetPost)
	blog.Put("/:id", authUser, blogHandler.UpdatePost)
	blog.Delete("/:id", authUser, blogHandler.DeletePost)

	// Job applications (owner scoped)
	jobs := api.Group("/jobs", authUser)
	jobs.Get("/", jobHandler.ListJobs)
	jobs.Post("/", jobHandler.CreateJob)
	jobs.Put("/:jobId", jobHandler.UpdateJob)
	jobs.Delete("/:jobId", jobHandler.DeleteJob)

	// Testimonials
	testimonials := api.Group("/testimonials")
	testimonials.Get("/", communityHandler.ListTestimonials)
	testimonials.Post("/", authUser, communityHandler.CreateTestimonial)
	testimonials.Get("/admin", authAdmin, communityHandler.ListAllTestimonials)
	testimonials.Patch("/:id/approve", authAdmin, communityHandler.ApproveTestimonial)
	testimonials.Delete("/:id", authAdmin, communityHandler.DeleteTestimonial)

	// Contact messages
	contact := api.Group("/contact")
	contact.Post("/", communityHandler.CreateContactMessage)
	contact.Get("/admin", authAdmin, communityHandler.ListContactMessages)
	contact.Patch("/:id/read", authAdmin, communityHandler.MarkContactMessageRead)
	contact.Delete("/:id", authAdmin, communityHandler.DeleteContactMessage)

	// Feature requests
	features := api.Group("/feature-requests")
	features.Post("/", authUser, communityHandler.CreateFeatureRequest)
	features.Get("/admin", authAdmin, communityHandler.ListFeatureRequests)
	features.Patch("/:id/status", authAdmin, communityHandler.UpdateFeatureRequestStatus)

	// Update logs
	updateLogs := api.Group("/update-logs")
	updateLogs.Get("/", communityHandler.ListUpdateLogs)
	updateLogs.Post("/", authAdmin, communityHandler.CreateUpdateLog)
	updateLogs.Put("/:id", authAdmin, communityHandler.UpdateUpdateLog)
	updateLogs.Delete("/:id", authAdmin, communityHandler.DeleteUpdateLog)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// The Authorizer client is initialized lazily on the first
	// authenticated request.
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	switch e := err.(type) {
	case *fiber.Error:
		code = e.Code
		message = e.Message
	case *types.CustomError:
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
