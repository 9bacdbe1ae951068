package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

// GetKnowledgePointsHandler lists knowledge points with optional filters.
// Keywords are returned normalized even when legacy rows hold malformed
// values.
func GetKnowledgePointsHandler(c echo.Context) error {
	type params struct {
		DocumentID      *int64  `query:"document_id"`
		MinWeight       float64 `query:"min_weight"`
		IncludeExcluded bool    `query:"include_excluded"`
		Limit           int32   `query:"limit"`
		Offset          int32   `query:"offset"`
	}

	type knowledgePoint struct {
		db.KnowledgePoint
		Keywords []string `json:"keywords"`
	}

	p := new(params)
	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if p.Limit <= 0 || p.Limit > 500 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)

	queryParams := db.GetKnowledgePointsParams{
		DocumentID:      p.DocumentID,
		MinWeight:       p.MinWeight,
		IncludeExcluded: p.IncludeExcluded,
		Limit:           p.Limit,
		Offset:          p.Offset,
	}

	points, err := q.GetKnowledgePoints(ctx, queryParams)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	total, err := q.CountKnowledgePoints(ctx, queryParams)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	out := make([]knowledgePoint, 0, len(points))
	for _, kp := range points {
		out = append(out, knowledgePoint{
			KnowledgePoint: kp,
			Keywords:       graph.NormalizeKeywords(kp.Keywords),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"knowledge_points": out,
		"total":            total,
	})
}
