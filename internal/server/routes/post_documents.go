package routes

import (
	"encoding/json"
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/queue"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/internal/storage"
	"github.com/privatetune/backend/internal/timing"
	"github.com/privatetune/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// UploadDocumentHandler accepts a multipart file upload, stores the file in
// S3, creates the document row and queues it for knowledge point extraction.
func UploadDocumentHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing file"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	key, err := gonanoid.New()
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	fileKey, err := storage.PutFile(ctx, app.S3, fileHeader.Filename, key, src)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	q := db.New(app.DBConn)
	doc, err := q.CreateDocument(ctx, db.CreateDocumentParams{
		Name:        fileHeader.Filename,
		FileKey:     fileKey,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
	})
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	msg, err := json.Marshal(queue.DocumentMsg{DocumentID: doc.ID})
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if err := queue.PublishFIFO(app.Queue, queue.ProcessQueue, msg); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	estimatedMs, err := timing.PredictDocumentProcessingTime(ctx, doc.SizeBytes, app.DBConn)
	if err != nil {
		logger.Warn("[Documents] Failed to predict processing time", "document_id", doc.ID, "err", err)
		estimatedMs = 0
	}

	logger.Info("[Documents] Uploaded", "document_id", doc.ID, "name", doc.Name)
	return c.JSON(http.StatusCreated, map[string]any{
		"document":     doc,
		"estimated_ms": estimatedMs,
	})
}
