package handlers

import (
	"github.com/eminenthub/eminenthub-api/internal/config"
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/eminenthub/eminenthub-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CommunityHandler handles testimonials, contact messages, feature
// requests and update logs.
type CommunityHandler struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(db *gorm.DB, cfg *config.Config) *CommunityHandler {
	return &CommunityHandler{DB: db, Config: cfg}
}

// ListTestimonials handles GET /api/testimonials
// @Summary List approved testimonials
// @Tags Community
// @Produce json
// @Success 200 {array} models.Testimonial
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /testimonials [get]
func (h *CommunityHandler) ListTestimonials(c *fiber.Ctx) error {
	testimonials, err := services.ListApprovedTestimonials(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "listTestimonials")
	}
	return utils.SuccessResponse(c, testimonials, fiber.StatusOK)
}

// CreateTestimonial handles POST /api/testimonials
// @Summary Submit a testimonial
// @Description Submit a testimonial; it stays hidden until an admin approves it
// @Tags Community
// @Accept json
// @Produce json
// @Param body body services.TestimonialInput true "Testimonial fields"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /testimonials [post]
func (h *CommunityHandler) CreateTestimonial(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "testimonials.authorization")
	}

	var body services.TestimonialInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "testimonials.validation.input")
	}

	testimonial, err := services.CreateTestimonial(h.DB, email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "createTestimonial")
	}
	return utils.CreatedResponse(c, testimonial.TestimonialID)
}

// ListAllTestimonials handles GET /api/testimonials/admin
// @Summary List all testimonials
// @Description List every testimonial, approved or pending
// @Tags Community
// @Produce json
// @Success 200 {array} models.Testimonial
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /testimonials/admin [get]
func (h *CommunityHandler) ListAllTestimonials(c *fiber.Ctx) error {
	testimonials, err := services.ListAllTestimonials(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "listAllTestimonials")
	}
	return utils.SuccessResponse(c, testimonials, fiber.StatusOK)
}

// ApproveTestimonial handles PATCH /api/testimonials/:id/approve
// @Summary Approve a testimonial
// @Tags Community
// @Produce json
// @Param id path string true "Testimonial id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /testimonials/{id}/approve [patch]
func (h *CommunityHandler) ApproveTestimonial(c *fiber.Ctx) error {
	result, err := services.ApproveTestimonial(h.DB, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "approveTestimonial")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// DeleteTestimonial handles DELETE /api/testimonials/:id
// @Summary Delete a testimonial
// @Tags Community
// @Produce json
// @Param id path string true "Testimonial id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /testimonials/{id} [delete]
func (h *CommunityHandler) DeleteTestimonial(c *fiber.Ctx) error {
	if err := services.DeleteTestimonial(h.DB, c.Params("id")); err != nil {
		return serviceErrorResponse(c, err, "deleteTestimonial")
	}
	return utils.MutationSuccessResponse(c, true, true)
}

// CreateContactMessage handles POST /api/contact
// @Summary Submit a contact message
// @Tags Community
// @Accept json
// @Produce json
// @Param body body services.ContactMessageInput true "Message fields"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /contact [post]
func (h *CommunityHandler) CreateContactMessage(c *fiber.Ctx) error {
	var body services.ContactMessageInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "contact.validation.input")
	}

	message, err := services.CreateContactMessage(h.DB, body)
	if err != nil {
		return serviceErrorResponse(c, err, "createContactMessage")
	}
	return utils.CreatedResponse(c, message.MessageID)
}

// ListContactMessages handles GET /api/contact/admin
// @Summary List contact messages
// @Tags Community
// @Produce json
// @Success 200 {array} models.ContactMessage
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /contact/admin [get]
func (h *CommunityHandler) ListContactMessages(c *fiber.Ctx) error {
	messages, err := services.ListContactMessages(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "listContactMessages")
	}
	return utils.SuccessResponse(c, messages, fiber.StatusOK)
}

// MarkContactMessageRead handles PATCH /api/contact/:id/read
// @Summary Mark a contact message read
// @Tags Community
// @Produce json
// @Param id path string true "Message id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contact/{id}/read [patch]
func (h *CommunityHandler) MarkContactMessageRead(c *fiber.Ctx) error {
	result, err := services.MarkContactMessageRead(h.DB, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "markContactMessageRead")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// DeleteContactMessage handles DELETE /api/contact/:id
// @Summary Delete a contact message
// @Tags Community
// @Produce json
// @Param id path string true "Message id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contact/{id} [delete]
func (h *CommunityHandler) DeleteContactMessage(c *fiber.Ctx) error {
	if err := services.DeleteContactMessage(h.DB, c.Params("id")); err != nil {
		return serviceErrorResponse(c, err, "deleteContactMessage")
	}
	return utils.MutationSuccessResponse(c, true, true)
}

// CreateFeatureRequest handles POST /api/feature-requests
// @Summary Submit a feature request
// @Description Submit a feature request; the admin is notified by email
// @Tags Community
// @Accept json
// @Produce json
// @Param body body services.FeatureRequestInput true "Request fields"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /feature-requests [post]
func (h *CommunityHandler) CreateFeatureRequest(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "featureRequests.authorization")
	}

	var body services.FeatureRequestInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "featureRequests.validation.input")
	}

	request, err := services.CreateFeatureRequest(h.DB, email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "createFeatureRequest")
	}

	services.NotifyFeatureRequest(h.Config, request)

	return utils.CreatedResponse(c, request.RequestID)
}

// ListFeatureRequests handles GET /api/feature-requests/admin
// @Summary List feature requests
// @Tags Community
// @Produce json
// @Success 200 {array} models.FeatureRequest
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /feature-requests/admin [get]
func (h *CommunityHandler) ListFeatureRequests(c *fiber.Ctx) error {
	requests, err := services.ListFeatureRequests(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "listFeatureRequests")
	}
	return utils.SuccessResponse(c, requests, fiber.StatusOK)
}

// UpdateFeatureRequestStatus handles PATCH /api/feature-requests/:id/status
// @Summary Update a feature request status
// @Tags Community
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param body body object true "Target status"
// @Success 200 {object} models.FeatureRequest
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /feature-requests/{id}/status [patch]
func (h *CommunityHandler) UpdateFeatureRequestStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "featureRequests.validation.input")
	}

	request, err := services.UpdateFeatureRequestStatus(h.DB, c.Params("id"), body.Status)
	if err != nil {
		return serviceErrorResponse(c, err, "updateFeatureRequestStatus")
	}
	return utils.SuccessResponse(c, request, fiber.StatusOK)
}

// ListUpdateLogs handles GET /api/update-logs
// @Summary List the changelog
// @Tags Community
// @Produce json
// @Success 200 {array} models.UpdateLog
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /update-logs [get]
func (h *CommunityHandler) ListUpdateLogs(c *fiber.Ctx) error {
	logs, err := services.ListUpdateLogs(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "listUpdateLogs")
	}
	return utils.SuccessResponse(c, logs, fiber.StatusOK)
}

// CreateUpdateLog handles POST /api/update-logs
// @Summary Publish a changelog entry
// @Tags Community
// @Accept json
// @Produce json
// @Param body body services.UpdateLogInput true "Entry fields"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /update-logs [post]
func (h *CommunityHandler) CreateUpdateLog(c *fiber.Ctx) error {
	var body services.UpdateLogInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "updateLogs.validation.input")
	}

	entry, err := services.CreateUpdateLog(h.DB, body)
	if err != nil {
		return serviceErrorResponse(c, err, "createUpdateLog")
	}
	return utils.CreatedResponse(c, entry.LogID)
}

// UpdateUpdateLog handles PUT /api/update-logs/:id
// @Summary Edit a changelog entry
// @Tags Community
// @Accept json
// @Produce json
// @Param id path string true "Entry id"
// @Param body body services.UpdateLogInput true "Fields to update"
// @Success 200 {object} models.UpdateLog
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /update-logs/{id} [put]
func (h *CommunityHandler) UpdateUpdateLog(c *fiber.Ctx) error {
	var body services.UpdateLogInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "updateLogs.validation.input")
	}

	entry, err := services.UpdateUpdateLog(h.DB, c.Params("id"), body)
	if err != nil {
		return serviceErrorResponse(c, err, "updateUpdateLog")
	}
	return utils.SuccessResponse(c, entry, fiber.StatusOK)
}

// DeleteUpdateLog handles DELETE /api/update-logs/:id
// @Summary Delete a changelog entry
// @Tags Community
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /update-logs/{id} [delete]
func (h *CommunityHandler) DeleteUpdateLog(c *fiber.Ctx) error {
	if err := services.DeleteUpdateLog(h.DB, c.Params("id")); err != nil {
		return serviceErrorResponse(c, err, "deleteUpdateLog")
	}
	return utils.MutationSuccessResponse(c, true, true)
}
