package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/middleware"
	"github.com/piyush5566/job-portal-go/internal/services"
	"github.com/piyush5566/job-portal-go/internal/storage"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply submits an application to a job. The multipart form may carry an
// optional resume file.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	jobID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	resumeName, resumeData, _ := readFormFile(c, "resume")

	application, err := h.applicationService.Apply(c.Context(), actor, jobID, resumeName, resumeData)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Only job seekers can apply to jobs",
			})
		case errors.Is(err, services.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Job not found",
			})
		case errors.Is(err, services.ErrAlreadyApplied):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, storage.ErrInvalidFileType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Resume must be a pdf, doc or docx file",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to submit application",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

// UpdateStatus moves an application through the status vocabulary. Gated by
// the parent job's poster.
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	applicationID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	application, err := h.applicationService.UpdateStatus(actor, applicationID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Application not found",
			})
		case errors.Is(err, authz.ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You do not have permission to update this application",
			})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update application",
			})
		}
	}

	return c.JSON(application)
}

// ListForJob returns a job's applications to its poster.
func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	jobID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	applications, err := h.applicationService.ListForJob(actor, jobID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Job not found",
			})
		case errors.Is(err, authz.ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You do not have permission to view these applications",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to list applications",
			})
		}
	}

	return c.JSON(fiber.Map{"applications": applications})
}

// Mine lists the authenticated job seeker's applications.
func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	applications, err := h.applicationService.ListMine(actor)
	if err != nil {
		if errors.Is(err, authz.ErrPermissionDenied) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Only job seekers have applications",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list applications",
		})
	}

	return c.JSON(fiber.Map{"applications": applications})
}
