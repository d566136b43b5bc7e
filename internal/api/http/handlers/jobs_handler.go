package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repairshop-service/internal/api/dto"
	"github.com/spec-kit/repairshop-service/internal/auth"
	"github.com/spec-kit/repairshop-service/internal/backend"
	"github.com/spec-kit/repairshop-service/internal/domain"
	"github.com/spec-kit/repairshop-service/internal/service"
	apperrors "github.com/spec-kit/repairshop-service/pkg/util"
)

// JobsHandler manages repair-job endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// CreateJob POST /jobs.
func (h *JobsHandler) CreateJob(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CustomerID == "" || strings.TrimSpace(req.Device) == "" || strings.TrimSpace(req.Issue) == "" {
		return apperrors.NewValidationError("customer_id, device, issue required", nil)
	}
	if req.Priority == "" {
		req.Priority = domain.JobPriorityMedium
	}

	result, err := h.service.CreateJob(c.Context(), backend.JobCreateInput{
		CustomerID: req.CustomerID,
		BranchID:   req.BranchID,
		Device:     strings.TrimSpace(req.Device),
		Issue:      strings.TrimSpace(req.Issue),
		Priority:   req.Priority,
		Tags:       req.Tags,
	})
	if err != nil {
		return err
	}
	return respondMutation(c, result)
}

// ListJobs GET /jobs.
func (h *JobsHandler) ListJobs(c *fiber.Ctx) error {
	jobs, fromCache, err := h.service.ListJobs(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.JobSummary, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobSummary(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": items, "from_cache": fromCache})
}

// UpdateJob PATCH /jobs/:id.
func (h *JobsHandler) UpdateJob(c *fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == nil && req.Priority == nil && req.TechnicianID == nil {
		return apperrors.NewValidationError("nothing to update", nil)
	}

	result, err := h.service.UpdateJob(c.Context(), backend.JobUpdateInput{
		JobID:        c.Params("id"),
		Status:       req.Status,
		Priority:     req.Priority,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		return err
	}
	return respondMutation(c, result)
}

// DeleteJob DELETE /jobs/:id.
func (h *JobsHandler) DeleteJob(c *fiber.Ctx) error {
	result, err := h.service.DeleteJob(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if result.Queued {
		return respondMutation(c, result)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddNote POST /jobs/:id/notes.
func (h *JobsHandler) AddNote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Body) == "" {
		return apperrors.NewValidationError("body required", nil)
	}

	result, err := h.service.AddNote(c.Context(), backend.NoteInput{
		JobID:    c.Params("id"),
		AuthorID: principal.UserID,
		Body:     strings.TrimSpace(req.Body),
	})
	if err != nil {
		return err
	}
	return respondMutation(c, result)
}

// respondMutation renders a mutation outcome: 202 with the queued
// action when the write is parked, 201 with the entity otherwise.
func respondMutation(c *fiber.Ctx, result *service.MutationResult) error {
	if result.Queued {
		return c.Status(http.StatusAccepted).JSON(fiber.Map{
			"queued": true,
			"action": dto.QueuedActionFromDomain(*result.Action),
		})
	}
	if result.Note != nil {
		return c.Status(http.StatusCreated).JSON(fiber.Map{"data": result.Note})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobSummary(result.Job)})
}

func jobSummary(job *domain.Job) dto.JobSummary {
	return dto.JobSummary{
		ID:           job.ID,
		ExternalKey:  job.ExternalKey,
		CustomerID:   job.CustomerID,
		BranchID:     job.BranchID,
		TechnicianID: job.TechnicianID,
		Device:       job.Device,
		Issue:        job.Issue,
		Status:       job.Status,
		Priority:     job.Priority,
		Tags:         job.Tags,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}
