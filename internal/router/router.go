package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studioclass/review-api/internal/config"
	"github.com/studioclass/review-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	SubmissionHandler *handler.SubmissionHandler
	WebhookHandler    *handler.WebhookHandler
	StatsHandler      *handler.StatsHandler
	UploadHandler     *handler.UploadHandler
	RealtimeHandler   *handler.RealtimeHandler
	JWTMiddleware     fiber.Handler
	UploadDir         string
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	// The webhook and upload endpoints are called by the trusted bot without a token.
	if deps.WebhookHandler != nil {
		deps.WebhookHandler.Register(api.Group("/webhook"))
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(api)
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", jwtMiddleware))
	}
	if deps.StatsHandler != nil {
		api.Get("/stats", jwtMiddleware, deps.StatsHandler.Get)
	}

	if deps.RealtimeHandler != nil {
		deps.RealtimeHandler.Register(app)
	}

	if deps.UploadDir != "" {
		app.Static("/uploads", deps.UploadDir)
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
