package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/middleware"
	"github.com/piyush5566/job-portal-go/internal/services"
	"github.com/piyush5566/job-portal-go/internal/storage"
)

type JobHandler struct {
	jobService *services.JobService
	media      *storage.MediaStore
}

func NewJobHandler(jobService *services.JobService, media *storage.MediaStore) *JobHandler {
	return &JobHandler{jobService: jobService, media: media}
}

// List is the public job listing with optional location/category/company
// filters.
func (h *JobHandler) List(c *fiber.Ctx) error {
	var filter dto.JobFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid query parameters",
		})
	}

	jobs, err := h.jobService.List(&filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list jobs",
		})
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

// Search is the machine-readable variant of List with identical filter
// semantics.
func (h *JobHandler) Search(c *fiber.Ctx) error {
	var filter dto.JobFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid query parameters",
		})
	}

	resp, err := h.jobService.Search(&filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search jobs",
		})
	}
	return c.JSON(resp)
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	jobID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	job, err := h.jobService.Get(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Job not found",
		})
	}
	return c.JSON(job)
}

// Create posts a job. The body is a multipart form so an optional
// company_logo image can ride along.
func (h *JobHandler) Create(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	logoPath, err := h.storeLogo(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Company logo must be a png, jpg or jpeg file",
		})
	}

	job, err := h.jobService.Create(actor, &req, logoPath)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Only employers can post jobs",
			})
		case errors.Is(err, services.ErrDuplicateJob):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create job",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	jobID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	logoPath, err := h.storeLogo(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Company logo must be a png, jpg or jpeg file",
		})
	}

	job, err := h.jobService.Update(actor, jobID, &req, logoPath)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Job not found",
			})
		case errors.Is(err, authz.ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You do not have permission to edit this job",
			})
		case errors.Is(err, services.ErrDuplicateJob):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update job",
			})
		}
	}

	return c.JSON(job)
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	jobID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	if err := h.jobService.Delete(actor, jobID); err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Job not found",
			})
		case errors.Is(err, authz.ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You do not have permission to delete this job",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete job",
			})
		}
	}

	return c.JSON(fiber.Map{"message": "Job and its applications deleted"})
}

// MyJobs lists the authenticated employer's own postings.
func (h *JobHandler) MyJobs(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	jobs, err := h.jobService.ListByPoster(actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list jobs",
		})
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

// storeLogo persists an optional company_logo upload and returns its stored
// path. No upload is not an error.
func (h *JobHandler) storeLogo(c *fiber.Ctx) (string, error) {
	name, data, err := readFormFile(c, "company_logo")
	if err != nil || len(data) == 0 {
		return "", nil
	}
	return h.media.StoreImage(storage.ImageLogo, name, data)
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
