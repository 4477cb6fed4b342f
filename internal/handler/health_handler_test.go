package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/raida-labs/diag-raida-api/internal/config"
)

func TestHealthCheck(t *testing.T) {
	cfg := config.Config{AppName: "Diag-Raida API", AppEnv: "testing"}

	app := fiber.New()
	app.Get("/health", HealthCheck(cfg))

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "healthy", body.Status)
	require.Equal(t, "Diag-Raida API", body.Service)
	require.Equal(t, "testing", body.Environment)
	require.NotEmpty(t, body.Version)
	require.False(t, body.Timestamp.IsZero())
}
