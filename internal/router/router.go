package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/raida-labs/diag-raida-api/internal/config"
	"github.com/raida-labs/diag-raida-api/internal/handler"
	"github.com/raida-labs/diag-raida-api/internal/observability"
	"github.com/raida-labs/diag-raida-api/internal/utils"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DiagnosticHandler     *handler.DiagnosticHandler
	RecommendationHandler *handler.RecommendationHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.DiagnosticHandler != nil {
		diagnostic := api.Group("/diagnostic")
		deps.DiagnosticHandler.Register(diagnostic)
	}

	if deps.RecommendationHandler != nil {
		recommendation := api.Group("/recommendation")
		deps.RecommendationHandler.Register(recommendation)
	}

	app.Use(func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "resource not found")
	})
}
