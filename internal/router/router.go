package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/zaheerkhan4077/YTBNICHES/internal/handler"
	"github.com/zaheerkhan4077/YTBNICHES/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Run    *handler.RunHandler
	Export *handler.ExportHandler
	Region *handler.RegionHandler
	Stats  *handler.StatsHandler
	Cache  *handler.CacheHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// Per-endpoint rate limiters. Runs and exports burn upstream quota,
	// so they get the tightest budgets.
	runLimiter := middleware.NewRunRateLimiter()
	exportLimiter := middleware.NewExportRateLimiter()
	invalidateLimiter := middleware.NewInvalidateRateLimiter()
	statsLimiter := middleware.NewStatsRateLimiter()

	// API routes
	api := app.Group("/api")

	api.Get("/regions", h.Region.List)

	api.Post("/runs", h.Run.Submit, runLimiter.Handler())
	api.Get("/runs", h.Run.History, statsLimiter.Handler())
	api.Get("/trending", h.Run.Trending, runLimiter.Handler())

	api.Get("/export.csv", h.Export.Export, exportLimiter.Handler())

	api.Get("/stats", h.Stats.GetStats, statsLimiter.Handler())
	api.Post("/cache/invalidate", h.Cache.Invalidate, invalidateLimiter.Handler())
}
