package handlers

import (
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/eminenthub/eminenthub-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// JobHandler handles job application endpoints. Every operation is
// scoped to the caller's own records.
type JobHandler struct {
	DB *gorm.DB
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{DB: db}
}

// ListJobs handles GET /api/jobs
// @Summary List the caller's job applications
// @Tags Jobs
// @Produce json
// @Success 200 {array} models.Job
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "jobs.authorization")
	}

	jobs, err := services.ListJobs(h.DB, email)
	if err != nil {
		return serviceErrorResponse(c, err, "listJobs")
	}
	return utils.SuccessResponse(c, jobs, fiber.StatusOK)
}

// CreateJob handles POST /api/jobs
// @Summary Track a job application
// @Tags Jobs
// @Accept json
// @Produce json
// @Param body body services.JobInput true "Job fields"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "jobs.authorization")
	}

	var body services.JobInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "jobs.validation.input")
	}

	job, err := services.CreateJob(h.DB, email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "createJob")
	}
	return utils.CreatedResponse(c, job.JobID)
}

// UpdateJob handles PUT /api/jobs/:jobId
// @Summary Update a job application
// @Description Update a job the caller owns; ownership is always checked
// @Tags Jobs
// @Accept json
// @Produce json
// @Param jobId path string true "Job id"
// @Param body body services.JobInput true "Fields to update"
// @Success 200 {object} models.Job
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /jobs/{jobId} [put]
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "jobs.authorization")
	}

	var body services.JobInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "jobs.validation.input")
	}

	job, err := services.UpdateJob(h.DB, c.Params("jobId"), email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "updateJob")
	}
	return utils.SuccessResponse(c, job, fiber.StatusOK)
}

// DeleteJob handles DELETE /api/jobs/:jobId
// @Summary Delete a job application
// @Description Delete a job the caller owns; ownership is always checked
// @Tags Jobs
// @Produce json
// @Param jobId path string true "Job id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /jobs/{jobId} [delete]
func (h *JobHandler) DeleteJob(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "jobs.authorization")
	}

	if err := services.DeleteJob(h.DB, c.Params("jobId"), email); err != nil {
		return serviceErrorResponse(c, err, "deleteJob")
	}
	return utils.MutationSuccessResponse(c, true, true)
}
