package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/graph"

	"github.com/labstack/echo/v4"
	"github.com/pgvector/pgvector-go"
)

// SearchKnowledgePointsHandler embeds the query text and returns the closest
// knowledge points by cosine distance.
func SearchKnowledgePointsHandler(c echo.Context) error {
	type params struct {
		Query     string  `json:"query" validate:"required,min=1"`
		MinWeight float64 `json:"min_weight" validate:"omitempty,gte=1,lte=5"`
		Limit     int32   `json:"limit" validate:"omitempty,gte=1,lte=100"`
	}

	p := new(params)
	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
	if p.MinWeight == 0 {
		p.MinWeight = 1
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	if app.AiClient == nil {
		return c.String(http.StatusServiceUnavailable, "no embedding model configured")
	}

	embedding, err := app.AiClient.GenerateEmbedding(ctx, []byte(p.Query))
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	q := db.New(app.DBConn)
	results, err := q.SearchKnowledgePoints(ctx, db.SearchKnowledgePointsParams{
		Embedding: pgvector.NewVector(embedding),
		MinWeight: p.MinWeight,
		Limit:     p.Limit,
	})
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	type resultItem struct {
		db.SearchResult
		Keywords []string `json:"keywords"`
	}
	items := make([]resultItem, 0, len(results))
	for _, r := range results {
		items = append(items, resultItem{
			SearchResult: r,
			Keywords:     graph.NormalizeKeywords(r.KnowledgePoint.Keywords),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"results": items})
}
