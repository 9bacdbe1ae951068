package routes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/ai"
	"github.com/privatetune/backend/pkg/graph"
	"github.com/privatetune/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/pgvector/pgvector-go"
)

// CreateKnowledgePointHandler creates a manual knowledge point. It is placed
// after the document's last chunk and marked is_manual.
func CreateKnowledgePointHandler(c echo.Context) error {
	type params struct {
		DocumentID int64    `json:"document_id" validate:"required"`
		Content    string   `json:"content" validate:"required"`
		Weight     float64  `json:"weight" validate:"required,gte=1,lte=5"`
		Keywords   []string `json:"keywords"`
	}

	p := new(params)
	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	keywords := graph.NormalizeKeywords(p.Keywords)
	encoded, err := json.Marshal(keywords)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	kp, err := q.CreateManualKnowledgePoint(ctx, db.CreateManualKnowledgePointParams{
		DocumentID: p.DocumentID,
		Content:    p.Content,
		Weight:     p.Weight,
		Keywords:   string(encoded),
	})
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	embedKnowledgePoint(ctx, q, app.AiClient, kp)

	return c.JSON(http.StatusCreated, kp)
}

// embedKnowledgePoint computes and stores the embedding for a new or edited
// point. Failures are logged, not surfaced; the point is still usable without
// semantic search.
func embedKnowledgePoint(ctx context.Context, q *db.Queries, client ai.Client, kp db.KnowledgePoint) {
	if client == nil {
		return
	}
	emb, err := client.GenerateEmbedding(ctx, []byte(kp.Content))
	if err != nil {
		logger.Warn("[KnowledgePoints] Embedding failed", "id", kp.ID, "err", err)
		return
	}
	if err := q.UpdateKnowledgePointEmbedding(ctx, kp.ID, pgvector.NewVector(emb)); err != nil {
		logger.Warn("[KnowledgePoints] Failed to store embedding", "id", kp.ID, "err", err)
	}
}
