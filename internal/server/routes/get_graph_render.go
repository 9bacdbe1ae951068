package routes

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

// GetGraphRenderHandler renders the laid-out knowledge graph as a PNG image.
func GetGraphRenderHandler(c echo.Context) error {
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	g, _, err := graphForRequest(ctx, c, app.DBConn)
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

	var buf bytes.Buffer
	if err := graph.RenderPNG(&buf, &g, positions, graph.DefaultStyle(), cfg, c.QueryParam("highlight")); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
