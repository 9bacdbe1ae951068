package routes

import (
	"net/http"
	"strconv"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/internal/storage"

	"github.com/labstack/echo/v4"
)

func GetDocumentDownloadHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid document id"})
	}

	q := db.New(app.DBConn)
	doc, err := q.GetDocument(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
	}

	link, err := storage.GenerateDownloadLink(ctx, app.S3, doc.FileKey)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"url": link})
}
