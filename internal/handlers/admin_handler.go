package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/middleware"
	"github.com/piyush5566/job-portal-go/internal/services"
)

// AdminHandler is the moderation panel: user management plus the global
// application list. Job moderation reuses the job routes, whose owner gates
// already admit admins.
type AdminHandler struct {
	authService        *services.AuthService
	userService        *services.UserService
	applicationService *services.ApplicationService
}

func NewAdminHandler(authService *services.AuthService, userService *services.UserService, applicationService *services.ApplicationService) *AdminHandler {
	return &AdminHandler{
		authService:        authService,
		userService:        userService,
		applicationService: applicationService,
	}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	users, err := h.userService.List(actor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list users",
		})
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": resp})
}

// CreateUser is the admin-only creation path, which may also mint admins.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.Register(&req, true)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	userID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	user, err := h.userService.Get(actor, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}
	return c.JSON(userResponse(user))
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	userID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	var req dto.AdminUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.userService.Update(actor, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrInvalidRole):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Role must be job_seeker, employer or admin",
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update user",
			})
		}
	}

	return c.JSON(userResponse(user))
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	userID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	if err := h.userService.Delete(actor, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDeletion):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete user",
			})
		}
	}

	return c.JSON(fiber.Map{"message": "User and associated data deleted"})
}

func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	applications, err := h.applicationService.ListAll(actor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list applications",
		})
	}
	return c.JSON(fiber.Map{"applications": applications})
}
