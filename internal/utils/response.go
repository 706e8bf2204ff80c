package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ConflictResponse sends a 409 conflict response (e.g. duplicate slug)
func ConflictResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"status":    fiber.StatusConflict,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      "conflict",
	})
}

// CreatedResponse sends a 201 response carrying the generated record id
func CreatedResponse(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Created",
		"ok":        true,
		"id":        id,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// MutationSuccessResponse sends a success response for sub-document mutations.
// matched reports whether the addressed element existed; modified whether it changed.
func MutationSuccessResponse(c *fiber.Ctx, matched, modified bool) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Success",
		"ok":        true,
		"matched":   matched,
		"modified":  modified,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// CreatedResponseStruct defines the schema for 201 responses
type CreatedResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

// MutationResponseStruct defines the schema for sub-document mutation responses
type MutationResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Matched   bool   `json:"matched"`
	Modified  bool   `json:"modified"`
	Timestamp string `json:"timestamp"`
}
