package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// DeleteKnowledgePointsHandler removes knowledge points in batch.
func DeleteKnowledgePointsHandler(c echo.Context) error {
	type params struct {
		IDs []int64 `json:"ids" validate:"required,min=1"`
	}

	p := new(params)
	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)

	deleted, err := q.DeleteKnowledgePoints(ctx, p.IDs)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{"deleted": deleted})
}
