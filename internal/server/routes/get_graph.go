package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetGraphHandler builds the knowledge graph over the stored points and
// returns its nodes and links.
func GetGraphHandler(c echo.Context) error {
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	g, mode, err := graphForRequest(ctx, c, app.DBConn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"mode":  mode,
		"nodes": g.Nodes,
		"links": g.Links,
	})
}
