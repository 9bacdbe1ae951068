package routes

import (
	"net/http"
	"strconv"

	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

// GetGraphLayoutHandler builds the knowledge graph, runs the force
// simulation to a settled state and returns the node positions.
func GetGraphLayoutHandler(c echo.Context) error {
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	g, mode, err := graphForRequest(ctx, c, app.DBConn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	cfg := graph.DefaultConfig()
	if raw := c.QueryParam("width"); raw != "" {
		if w, err := strconv.ParseFloat(raw, 64); err == nil && w > 0 {
			cfg.Width = w
		}
	}
	if raw := c.QueryParam("height"); raw != "" {
		if h, err := strconv.ParseFloat(raw, 64); err == nil && h > 0 {
			cfg.Height = h
		}
	}

	positions := graph.NewSimulation(&g, cfg).Run()

	return c.JSON(http.StatusOK, map[string]any{
		"mode":      mode,
		"nodes":     g.Nodes,
		"links":     g.Links,
		"positions": positions,
	})
}
