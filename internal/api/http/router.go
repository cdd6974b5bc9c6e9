package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/spec-kit/taskboard/internal/api/http/handlers"
	"github.com/spec-kit/taskboard/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tasks          *handlers.TasksHandler
	Milestones     *handlers.MilestonesHandler
	Lookups        *handlers.LookupsHandler
	AuthMiddleware *auth.Middleware
	StaticDir      string
}

// RegisterRoutes wires HTTP routes. Login and static files are public;
// everything touching the data store requires a verified bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Content-Type, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Put("/save-task/:taskID", cfg.Tasks.Save)
	protected.Get("/load-task/:taskID", cfg.Tasks.Load)
	protected.Delete("/delete-task/:taskID", cfg.Tasks.Delete)
	protected.Get("/load-tasks-summary", cfg.Tasks.ListSummaries)

	protected.Put("/save-milestone/:taskID/:milestoneID", cfg.Milestones.Save)
	protected.Get("/load-milestones/:taskID", cfg.Milestones.List)
	protected.Get("/load-milestone/:taskID/:milestoneID", cfg.Milestones.Load)
	protected.Delete("/delete-milestone/:taskID/:milestoneID", cfg.Milestones.Delete)

	protected.Get("/get-statuses", cfg.Lookups.Statuses)
	protected.Get("/get-from-values", cfg.Lookups.FromValues)
	protected.Get("/get-categories", cfg.Lookups.Categories)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
}
