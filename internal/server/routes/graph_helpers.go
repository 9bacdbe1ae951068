package routes

import (
	"context"
	"fmt"
	"strconv"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

// toGraphPoints converts stored knowledge points into the shape the graph
// builder expects. Keywords stay in their raw encoding; the builder
// normalizes them itself.
func toGraphPoints(points []db.KnowledgePoint) []graph.KnowledgePoint {
	out := make([]graph.KnowledgePoint, 0, len(points))
	for _, p := range points {
		id := p.ID
		out = append(out, graph.KnowledgePoint{
			ID:           &id,
			Content:      p.Content,
			DocumentID:   p.DocumentID,
			DocumentName: p.DocumentName,
			ChunkIndex:   int(p.ChunkIndex),
			Weight:       p.Weight,
			Excluded:     p.Excluded,
			IsManual:     p.IsManual,
			Keywords:     p.Keywords,
		})
	}
	return out
}

// graphForRequest reads the shared graph query params (mode, min_weight,
// document_id) and builds the graph from matching knowledge points.
func graphForRequest(ctx context.Context, c echo.Context, conn db.IConn) (graph.Graph, graph.Mode, error) {
	mode := graph.ModeShared
	switch c.QueryParam("mode") {
	case "", string(graph.ModeShared):
	case string(graph.ModeKeywordNodes):
		mode = graph.ModeKeywordNodes
	default:
		return graph.Graph{}, mode, fmt.Errorf("unknown graph mode %q", c.QueryParam("mode"))
	}

	minWeight := 1.0
	if raw := c.QueryParam("min_weight"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return graph.Graph{}, mode, fmt.Errorf("invalid min_weight: %w", err)
		}
		minWeight = float64(graph.ClampWeight(w))
	}

	var documentID *int64
	if raw := c.QueryParam("document_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return graph.Graph{}, mode, fmt.Errorf("invalid document_id: %w", err)
		}
		documentID = &id
	}

	q := db.New(conn)
	points, err := q.GetKnowledgePoints(ctx, db.GetKnowledgePointsParams{
		DocumentID: documentID,
		MinWeight:  minWeight,
		Limit:      10_000,
	})
	if err != nil {
		return graph.Graph{}, mode, err
	}

	return graph.Build(toGraphPoints(points), mode), mode, nil
}
