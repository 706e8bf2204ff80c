package handlers

import (
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/eminenthub/eminenthub-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles account endpoints
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// SyncUser handles POST /api/users/sync
// @Summary Sync the caller's account
// @Description Create the account and empty portfolio on first sign-in, refresh profile fields afterwards
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.SyncUserInput true "Profile fields from the identity provider"
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/sync [post]
func (h *UserHandler) SyncUser(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "users.authorization")
	}

	var body services.SyncUserInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}
	// The verified token decides the account identity, never the payload.
	body.Email = email

	user, err := services.SyncUser(h.DB, body)
	if err != nil {
		return serviceErrorResponse(c, err, "syncUser")
	}

	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// ListUsers handles GET /api/users/admin
// @Summary List all accounts
// @Description List every account record, newest first
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/admin [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "listUsers")
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// GetUser handles GET /api/users/:email
// @Summary Get an account
// @Description Get one account record; callers may read themselves, admins anyone
// @Tags Users
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{email} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "users.authorization")
	}

	target := c.Params("email")
	if target != email && !callerIsAdmin(c) {
		return utils.ErrorResponse(c, "Not allowed to read this account", fiber.StatusForbidden, "users.authorization")
	}

	user, err := services.GetUserByEmail(h.DB, target)
	if err != nil {
		return serviceErrorResponse(c, err, "getUser")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// UpdateUser handles PUT /api/users/:email
// @Summary Update an account
// @Description Update profile fields; callers may edit themselves, admins anyone
// @Tags Users
// @Accept json
// @Produce json
// @Param email path string true "Account email"
// @Param body body services.UpdateUserInput true "Editable fields"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{email} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "users.authorization")
	}

	target := c.Params("email")
	if target != email && !callerIsAdmin(c) {
		return utils.ErrorResponse(c, "Not allowed to edit this account", fiber.StatusForbidden, "users.authorization")
	}

	var body services.UpdateUserInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	user, err := services.UpdateUser(h.DB, target, body)
	if err != nil {
		return serviceErrorResponse(c, err, "updateUser")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// SwitchRole handles PATCH /api/users/:email/role
// @Summary Switch the active role
// @Description Switch the account's active role to one of its available roles
// @Tags Users
// @Accept json
// @Produce json
// @Param email path string true "Account email"
// @Param body body object true "Target role"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{email}/role [patch]
func (h *UserHandler) SwitchRole(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "users.authorization")
	}

	target := c.Params("email")
	if target != email && !callerIsAdmin(c) {
		return utils.ErrorResponse(c, "Not allowed to edit this account", fiber.StatusForbidden, "users.authorization")
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil || body.Role == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	user, err := services.SwitchRole(h.DB, target, body.Role)
	if err != nil {
		return serviceErrorResponse(c, err, "switchRole")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
