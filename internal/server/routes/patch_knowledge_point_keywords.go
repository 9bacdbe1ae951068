package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

// EditKnowledgePointKeywordsHandler adds and removes keywords on a knowledge
// point. Additions are deduplicated case-insensitively; removals match
// case-insensitively too.
func EditKnowledgePointKeywordsHandler(c echo.Context) error {
	type params struct {
		Add    []string `json:"add"`
		Remove []string `json:"remove"`
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid knowledge point id"})
	}

	p := new(params)
	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if len(p.Add) == 0 && len(p.Remove) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "nothing to update"})
	}

	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)

	kp, err := q.GetKnowledgePoint(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "knowledge point not found"})
	}

	keywords := graph.NormalizeKeywords(kp.Keywords)

	removed := make(map[string]bool, len(p.Remove))
	for _, kw := range p.Remove {
		removed[strings.ToLower(strings.TrimSpace(kw))] = true
	}

	next := make([]string, 0, len(keywords)+len(p.Add))
	seen := make(map[string]bool)
	for _, kw := range append(keywords, graph.NormalizeKeywords(p.Add)...) {
		lower := strings.ToLower(kw)
		if removed[lower] || seen[lower] {
			continue
		}
		seen[lower] = true
		next = append(next, kw)
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	kp, err = q.UpdateKnowledgePointKeywords(ctx, id, string(encoded))
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"id":       kp.ID,
		"keywords": next,
	})
}
