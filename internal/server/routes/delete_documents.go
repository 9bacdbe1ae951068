package routes

import (
	"net/http"
	"strconv"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/internal/storage"
	"github.com/privatetune/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeleteDocumentHandler removes a document, its knowledge points and the
// stored file.
func DeleteDocumentHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid document id"})
	}

	q := db.New(app.DBConn)
	doc, err := q.DeleteDocument(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
	}

	if doc.FileKey != "" {
		if err := storage.DeleteFile(ctx, app.S3, doc.FileKey); err != nil {
			logger.Warn("[Documents] Failed to delete stored file", "document_id", doc.ID, "err", err)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"deleted": doc.ID})
}
