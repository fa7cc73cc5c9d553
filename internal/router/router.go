package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/orbitx-mcn/orbitx-go/internal/handler"
	"github.com/orbitx-mcn/orbitx-go/internal/metrics"
	"github.com/orbitx-mcn/orbitx-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health    *handler.HealthHandler
	Creator   *handler.CreatorHandler
	Audit     *handler.AuditHandler
	Analytics *handler.AnalyticsHandler
	Auth      *handler.AuthHandler
	Lookup    *handler.LookupHandler
	Strategy  *handler.StrategyHandler
	Export    *handler.ExportHandler
}

// Limiters holds the per-route rate limiters. A nil limiter leaves its
// routes unlimited.
type Limiters struct {
	Login    *middleware.RateLimiter
	Sync     *middleware.RateLimiter
	Lookup   *middleware.RateLimiter
	Strategy *middleware.RateLimiter
	Export   *middleware.RateLimiter
}

// NewLimiters builds the default limiter set.
func NewLimiters() *Limiters {
	return &Limiters{
		Login:    middleware.NewLoginRateLimiter(),
		Sync:     middleware.NewSyncRateLimiter(),
		Lookup:   middleware.NewLookupRateLimiter(),
		Strategy: middleware.NewStrategyRateLimiter(),
		Export:   middleware.NewExportRateLimiter(),
	}
}

// Stop releases every limiter's background sweeper.
func (l *Limiters) Stop() {
	for _, rl := range []*middleware.RateLimiter{l.Login, l.Sync, l.Lookup, l.Strategy, l.Export} {
		if rl != nil {
			rl.Stop()
		}
	}
}

func limit(rl *middleware.RateLimiter) fiber.Handler {
	if rl == nil {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	return rl.Handler()
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string, l *Limiters) {
	if l == nil {
		l = &Limiters{}
	}

	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(metrics.Middleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health checks and metrics live outside /api
	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	api.Get("/health", h.Health.Health)

	// Creator routes; /export must be registered before /:id
	api.Get("/creators", h.Creator.List)
	api.Post("/creators", h.Creator.Create)
	api.Get("/creators/export", limit(l.Export), h.Export.Creators)
	api.Get("/creators/:id", h.Creator.Get)
	api.Put("/creators/:id", h.Creator.Update)
	api.Delete("/creators/:id", h.Creator.Delete)
	api.Post("/creators/:id/sync", limit(l.Sync), h.Creator.Sync)

	// Analytics routes
	api.Get("/analytics", h.Analytics.List)
	api.Get("/analytics/export", limit(l.Export), h.Export.Analytics)

	// Audit trail
	api.Get("/logs", h.Audit.List)

	// Auth
	api.Post("/auth/login", limit(l.Login), h.Auth.Login)

	// External collaborators
	api.Get("/channels/lookup", limit(l.Lookup), h.Lookup.Lookup)
	api.Post("/strategy", limit(l.Strategy), h.Strategy.Generate)
}
