package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and message are required",
		})
	}

	if err := h.contactService.Send(&req); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "An error occurred while sending your message. Please try again later.",
		})
	}

	return c.JSON(fiber.Map{"message": "Your message has been sent! We will get back to you soon."})
}
