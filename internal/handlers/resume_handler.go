package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/middleware"
	"github.com/piyush5566/job-portal-go/internal/services"
)

type ResumeHandler struct {
	resumeService *services.ResumeService
}

func NewResumeHandler(resumeService *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

// Serve streams a resume as an attachment. The wildcard captures the
// tier-relative suffix "<user_id>/<filename>".
func (h *ResumeHandler) Serve(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	suffix := c.Params("*")

	data, filename, err := h.resumeService.Serve(c.Context(), actor, suffix)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You do not have permission to view this resume",
			})
		case errors.Is(err, services.ErrResumeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Resume file not found",
			})
		default:
			// Local read failure on a file known to exist, or a remote tier
			// fault: a server error, never a 404.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Error serving resume file",
			})
		}
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/octet-stream")
	return c.Send(data)
}
