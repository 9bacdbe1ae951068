package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/ai"

	"github.com/labstack/echo/v4"
)

// GetMetricsHandler reports accumulated model usage metrics.
func GetMetricsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	metrics := ai.ModelMetrics{}
	if app.AiClient != nil {
		metrics = app.AiClient.GetMetrics()
	}

	return c.JSON(http.StatusOK, map[string]any{"metrics": metrics})
}
