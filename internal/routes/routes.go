package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/piyush5566/job-portal-go/internal/config"
	"github.com/piyush5566/job-portal-go/internal/handlers"
	"github.com/piyush5566/job-portal-go/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	jobHandler *handlers.JobHandler,
	applicationHandler *handlers.ApplicationHandler,
	resumeHandler *handlers.ResumeHandler,
	adminHandler *handlers.AdminHandler,
	contactHandler *handlers.ContactHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public
	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	jwt := middleware.JWTProtected(cfg)
	actor := middleware.LoadActor(db)

	// Protected routes (JWT required) - apply middleware to individual routes
	// This prevents JWT middleware from affecting public routes
	api.Post("/auth/logout", jwt, actor, authHandler.Logout)
	api.Get("/profile", jwt, actor, authHandler.Profile)
	api.Put("/profile", jwt, actor, authHandler.UpdateProfile)

	// Jobs — listing, detail and search are public
	api.Get("/jobs", jobHandler.List)
	api.Get("/jobs/search", jobHandler.Search)
	api.Get("/jobs/:id", jobHandler.Get)

	api.Post("/jobs", jwt, actor, jobHandler.Create)
	api.Put("/jobs/:id", jwt, actor, jobHandler.Update)
	api.Delete("/jobs/:id", jwt, actor, jobHandler.Delete)
	api.Get("/employer/jobs", jwt, actor, jobHandler.MyJobs)
	api.Get("/jobs/:id/applications", jwt, actor, applicationHandler.ListForJob)

	// Applications
	api.Post("/jobs/:id/apply", jwt, actor, applicationHandler.Apply)
	api.Get("/applications/mine", jwt, actor, applicationHandler.Mine)
	api.Put("/applications/:id/status", jwt, actor, applicationHandler.UpdateStatus)

	// Resume downloads — authenticated, ownership enforced in the service
	api.Get("/resumes/*", jwt, actor, resumeHandler.Serve)

	// Contact form
	api.Post("/contact", contactHandler.Submit)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", jwt, actor, middleware.AdminRequired())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/applications", adminHandler.ListApplications)
}
