package handlers

import (
	"strings"

	"github.com/eminenthub/eminenthub-api/internal/middleware"
	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// callerEmail reads the authenticated caller's email from context
func callerEmail(c *fiber.Ctx) (string, error) {
	email, ok := c.Locals(middleware.LocalEmail).(string)
	if !ok || email == "" {
		return "", fiber.ErrForbidden
	}
	return email, nil
}

// callerIsAdmin reads the authenticated caller's role from context
func callerIsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals(middleware.LocalRole).(string)
	return role == models.RoleAdmin
}

// parseTags extracts tags from query parameters, supporting both
// multiple 'tags' keys and comma-separated values.
func parseTags(c *fiber.Ctx) []string {
	tagMap := make(map[string]struct{})

	// Visit all query arguments to collect multiple 'tags' parameters
	args := c.Context().QueryArgs()
	for key, value := range args.All() {
		if string(key) == "tags" {
			// Split by comma in case the value itself is comma-separated
			vals := strings.Split(string(value), ",")
			for _, v := range vals {
				v = strings.TrimSpace(v)
				if v != "" {
					tagMap[v] = struct{}{}
				}
			}
		}
	}

	if len(tagMap) == 0 {
		return nil
	}

	tags := make([]string, 0, len(tagMap))
	for k := range tagMap {
		tags = append(tags, k)
	}

	return tags
}

// serviceErrorResponse maps record-layer errors onto HTTP statuses.
// Services signal outcomes with sentinel messages rather than typed
// errors, so the mapping is by message.
func serviceErrorResponse(c *fiber.Ctx, err error, errType string) error {
	msg := err.Error()
	switch {
	case msg == "not found":
		return utils.NotFoundResponse(c, "Record not found")
	case msg == "forbidden":
		return utils.ErrorResponse(c, "Not the owner of this record", fiber.StatusForbidden, errType)
	case msg == "duplicate slug":
		return utils.ConflictResponse(c, "Slug already in use")
	case strings.Contains(msg, "required"),
		strings.Contains(msg, "unknown status"),
		strings.Contains(msg, "not available"):
		return utils.ErrorResponse(c, msg, fiber.StatusBadRequest, errType)
	}
	return utils.ErrorResponse(c, msg, fiber.StatusInternalServerError, errType)
}
