package middleware

import (
	"fmt"
	"log"
	"strings"

	"github.com/eminenthub/eminenthub-api/internal/config"
	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/eminenthub/eminenthub-api/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Locals keys populated by the auth guard.
const (
	LocalEmail = "email"
	LocalRole  = "role"
)

// AuthAdmin guards a route for the admin role
func AuthAdmin(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return Auth(cfg, db, models.RoleAdmin)
}

// AuthUser guards a route for regular users and admins
func AuthUser(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return Auth(cfg, db, models.RoleUser, models.RoleAdmin)
}

// Auth verifies the bearer token with the Authorizer service, loads the
// caller's stored role and rejects calls whose role is not in the
// allow-list. The caller email and role are stored in Locals on success.
func Auth(cfg *config.Config, db *gorm.DB, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: err.Error(),
				Type:    "auth.token",
			}
		}

		// The client is created lazily so the redirect URL can be
		// derived from the first authenticated request.
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
				log.Printf("Authorizer init failed: %v", err)
				return &types.CustomError{
					Code:    fiber.StatusInternalServerError,
					Message: "Authorization service unavailable",
					Type:    "auth.init",
				}
			}
		}

		profile, err := services.VerifyToken(token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Invalid token: %v", err),
				Type:    "auth.token",
			}
		}

		// The stored role decides access, not the token contents.
		role, err := lookupRole(db, profile.Email)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// Account provisioning happens via /api/users/sync; a
				// verified token with no account yet acts as a plain user.
				role = models.RoleUser
			} else {
				log.Printf("Role lookup failed for %s: %v", profile.Email, err)
				return &types.CustomError{
					Code:    fiber.StatusInternalServerError,
					Message: "Role lookup failed",
					Type:    "auth.role",
				}
			}
		}

		allowed := false
		for _, r := range roles {
			if r == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: fmt.Sprintf("Role %q is not allowed on this resource", role),
				Type:    "auth.role",
			}
		}

		c.Locals(LocalEmail, profile.Email)
		c.Locals(LocalRole, role)

		return c.Next()
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", fmt.Errorf("Authorization header not found")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("Authorization header is not a bearer token")
	}

	return parts[1], nil
}

// lookupRole reads the stored role for an email
func lookupRole(db *gorm.DB, email string) (string, error) {
	var user models.User
	if err := db.Select("role").Where("email = ?", email).First(&user).Error; err != nil {
		return "", err
	}
	return user.Role, nil
}
