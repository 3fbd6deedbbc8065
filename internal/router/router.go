package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Jeanads/trendx-analytics/internal/handler"
	"github.com/Jeanads/trendx-analytics/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health    *handler.HealthHandler
	Dashboard *handler.DashboardHandler
	Resolve   *handler.ResolveHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(middleware.NewRequestID())
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api", middleware.NewAPIRateLimiter().Handler())

	api.Get("/summary", h.Dashboard.Summary)
	api.Get("/users", h.Dashboard.Users)
	api.Get("/users/:name", h.Dashboard.User)
	api.Get("/rankings", h.Dashboard.Rankings)
	api.Get("/videos", h.Dashboard.Videos)
	api.Get("/accounts", h.Dashboard.Accounts)
	api.Get("/resolve", middleware.NewResolveRateLimiter().Handler(), h.Resolve.Resolve)
}
