package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/raida-labs/diag-raida-api/internal/config"
)

// serviceVersion identifies the running build in the health payload.
const serviceVersion = "1.0.0"

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{
			Status:      "healthy",
			Service:     cfg.AppName,
			Version:     serviceVersion,
			Environment: cfg.AppEnv,
			Timestamp:   time.Now().UTC(),
		})
	}
}
