package handlers

import (
	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/eminenthub/eminenthub-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PortfolioHandler handles portfolio endpoints. Mutations always
// address the caller's own portfolio; the public read takes an email.
type PortfolioHandler struct {
	DB *gorm.DB
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(db *gorm.DB) *PortfolioHandler {
	return &PortfolioHandler{DB: db}
}

// GetPortfolio handles GET /api/portfolio/:email
// @Summary Get a portfolio
// @Description Get the public portfolio for an account
// @Tags Portfolio
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} models.Portfolio
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/{email} [get]
func (h *PortfolioHandler) GetPortfolio(c *fiber.Ctx) error {
	portfolio, err := services.GetPortfolio(h.DB, c.Params("email"))
	if err != nil {
		return serviceErrorResponse(c, err, "getPortfolio")
	}
	return utils.SuccessResponse(c, portfolio, fiber.StatusOK)
}

// UpdatePortfolio handles PUT /api/portfolio/:email
// @Summary Update portfolio info
// @Description Update the scalar portfolio fields (title, bio, location, phone)
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param email path string true "Account email"
// @Param body body services.PortfolioInfoInput true "Fields to update"
// @Success 200 {object} models.Portfolio
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/{email} [put]
func (h *PortfolioHandler) UpdatePortfolio(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}
	if c.Params("email") != email && !callerIsAdmin(c) {
		return utils.ErrorResponse(c, "Not the owner of this portfolio", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body services.PortfolioInfoInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	portfolio, err := services.UpdatePortfolioInfo(h.DB, c.Params("email"), body)
	if err != nil {
		return serviceErrorResponse(c, err, "updatePortfolio")
	}
	return utils.SuccessResponse(c, portfolio, fiber.StatusOK)
}

// AddSocialLink handles POST /api/portfolio/social/add
// @Summary Add or replace a social link
// @Description Upsert a social link on the caller's portfolio, keyed by name
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param body body models.SocialLink true "Link to set"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/social/add [post]
func (h *PortfolioHandler) AddSocialLink(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body models.SocialLink
	if err := c.BodyParser(&body); err != nil || body.Name == "" || body.URL == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	result, err := services.SetSocialLink(h.DB, email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "addSocialLink")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// RemoveSocialLink handles DELETE /api/portfolio/social/:name
// @Summary Remove a social link
// @Description Remove the social link with the given name from the caller's portfolio
// @Tags Portfolio
// @Produce json
// @Param name path string true "Link name"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/social/{name} [delete]
func (h *PortfolioHandler) RemoveSocialLink(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	result, err := services.RemoveSocialLink(h.DB, email, c.Params("name"))
	if err != nil {
		return serviceErrorResponse(c, err, "removeSocialLink")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// AddExperience handles POST /api/portfolio/experience/add
// @Summary Add an experience entry
// @Description Append an experience entry to the caller's portfolio
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param body body models.ExperienceEntry true "Entry to add"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/experience/add [post]
func (h *PortfolioHandler) AddExperience(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body models.ExperienceEntry
	if err := c.BodyParser(&body); err != nil || body.Company == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	entry, err := services.AddExperienceEntry(h.DB, email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "addExperience")
	}
	return utils.CreatedResponse(c, entry.ID)
}

// UpdateExperience handles PUT /api/portfolio/experience/:id
// @Summary Update an experience entry
// @Description Replace the experience entry with the given id
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param id path string true "Entry id"
// @Param body body models.ExperienceEntry true "Replacement entry"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/experience/{id} [put]
func (h *PortfolioHandler) UpdateExperience(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body models.ExperienceEntry
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	result, err := services.UpdateExperienceEntry(h.DB, email, c.Params("id"), body)
	if err != nil {
		return serviceErrorResponse(c, err, "updateExperience")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// RemoveExperience handles DELETE /api/portfolio/experience/:id
// @Summary Remove an experience entry
// @Tags Portfolio
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/experience/{id} [delete]
func (h *PortfolioHandler) RemoveExperience(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	result, err := services.RemoveExperienceEntry(h.DB, email, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "removeExperience")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// AddEducation handles POST /api/portfolio/education/add
// @Summary Add an education entry
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param body body models.EducationEntry true "Entry to add"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/education/add [post]
func (h *PortfolioHandler) AddEducation(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body models.EducationEntry
	if err := c.BodyParser(&body); err != nil || body.School == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	entry, err := services.AddEducationEntry(h.DB, email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "addEducation")
	}
	return utils.CreatedResponse(c, entry.ID)
}

// UpdateEducation handles PUT /api/portfolio/education/:id
// @Summary Update an education entry
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param id path string true "Entry id"
// @Param body body models.EducationEntry true "Replacement entry"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/education/{id} [put]
func (h *PortfolioHandler) UpdateEducation(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body models.EducationEntry
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	result, err := services.UpdateEducationEntry(h.DB, email, c.Params("id"), body)
	if err != nil {
		return serviceErrorResponse(c, err, "updateEducation")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// RemoveEducation handles DELETE /api/portfolio/education/:id
// @Summary Remove an education entry
// @Tags Portfolio
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/education/{id} [delete]
func (h *PortfolioHandler) RemoveEducation(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	result, err := services.RemoveEducationEntry(h.DB, email, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "removeEducation")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// AddProject handles POST /api/portfolio/projects/add
// @Summary Add a project
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param body body models.ProjectEntry true "Project to add"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/projects/add [post]
func (h *PortfolioHandler) AddProject(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body models.ProjectEntry
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	entry, err := services.AddProjectEntry(h.DB, email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "addProject")
	}
	return utils.CreatedResponse(c, entry.ID)
}

// UpdateProject handles PUT /api/portfolio/projects/:id
// @Summary Update a project
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param id path string true "Project id"
// @Param body body models.ProjectEntry true "Replacement project"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/projects/{id} [put]
func (h *PortfolioHandler) UpdateProject(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body models.ProjectEntry
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	result, err := services.UpdateProjectEntry(h.DB, email, c.Params("id"), body)
	if err != nil {
		return serviceErrorResponse(c, err, "updateProject")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// RemoveProject handles DELETE /api/portfolio/projects/:id
// @Summary Remove a project
// @Tags Portfolio
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/projects/{id} [delete]
func (h *PortfolioHandler) RemoveProject(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	result, err := services.RemoveProjectEntry(h.DB, email, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "removeProject")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// AddSkill handles POST /api/portfolio/skills/add
// @Summary Add a skill
// @Description Add a skill item under a category, creating the category when needed
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param body body object true "Category and item"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/skills/add [post]
func (h *PortfolioHandler) AddSkill(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body struct {
		Category string `json:"category"`
		Item     string `json:"item"`
	}
	if err := c.BodyParser(&body); err != nil || body.Category == "" || body.Item == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	result, err := services.AddSkill(h.DB, email, body.Category, body.Item)
	if err != nil {
		return serviceErrorResponse(c, err, "addSkill")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// RemoveSkillCategory handles DELETE /api/portfolio/skills/:category
// @Summary Remove a skill category
// @Tags Portfolio
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/skills/{category} [delete]
func (h *PortfolioHandler) RemoveSkillCategory(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	result, err := services.RemoveSkillCategory(h.DB, email, c.Params("category"))
	if err != nil {
		return serviceErrorResponse(c, err, "removeSkillCategory")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}

// RemoveSkill handles DELETE /api/portfolio/skills/:category/items
// @Summary Remove a skill item
// @Description Remove one item from a category; an emptied category disappears
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param category path string true "Category name"
// @Param body body object true "Item to remove"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /portfolio/skills/{category}/items [delete]
func (h *PortfolioHandler) RemoveSkill(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "portfolio.authorization")
	}

	var body struct {
		Item string `json:"item"`
	}
	if err := c.BodyParser(&body); err != nil || body.Item == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portfolio.validation.input")
	}

	result, err := services.RemoveSkill(h.DB, email, c.Params("category"), body.Item)
	if err != nil {
		return serviceErrorResponse(c, err, "removeSkill")
	}
	return utils.MutationSuccessResponse(c, result.Matched, result.Modified)
}
