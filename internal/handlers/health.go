package handlers

import (
	"github.com/eminenthub/eminenthub-api/internal/config"
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler handles the health endpoint
type HealthHandler struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, cfg *config.Config) *HealthHandler {
	return &HealthHandler{DB: db, Config: cfg}
}

// GetHealth handles GET /api/health
// @Summary Service health
// @Description Report database and Authorizer reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
