package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func GetDocumentsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	docs, err := q.GetDocuments(ctx)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{"documents": docs})
}
