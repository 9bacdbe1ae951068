package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/queue"
	"github.com/privatetune/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// ReprocessDocumentHandler queues a document for re-extraction. Manual
// knowledge points are preserved; auto-extracted ones are replaced.
func ReprocessDocumentHandler(c echo.Context) error {
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

	if _, err := q.UpdateDocumentStatus(ctx, doc.ID, db.DocumentStatusPending); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	msg, err := json.Marshal(queue.DocumentMsg{DocumentID: doc.ID})
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if err := queue.PublishFIFO(app.Queue, queue.ProcessQueue, msg); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusAccepted, map[string]any{"document_id": doc.ID, "status": db.DocumentStatusPending})
}
