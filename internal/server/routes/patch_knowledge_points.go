package routes

import (
	"net/http"
	"strconv"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// EditKnowledgePointHandler updates a knowledge point's weight, excluded flag
// or content. Only the provided fields change. Content edits refresh the
// stored embedding.
func EditKnowledgePointHandler(c echo.Context) error {
	type params struct {
		Weight   *float64 `json:"weight" validate:"omitempty,gte=1,lte=5"`
		Excluded *bool    `json:"excluded"`
		Content  *string  `json:"content" validate:"omitempty,min=1"`
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid knowledge point id"})
	}

	p := new(params)
	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if p.Weight == nil && p.Excluded == nil && p.Content == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "nothing to update"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	kp, err := q.GetKnowledgePoint(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "knowledge point not found"})
	}

	if p.Weight != nil {
		if kp, err = q.UpdateKnowledgePointWeight(ctx, id, *p.Weight); err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}
	}
	if p.Excluded != nil {
		if kp, err = q.SetKnowledgePointExcluded(ctx, id, *p.Excluded); err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}
	}
	if p.Content != nil {
		if kp, err = q.UpdateKnowledgePointContent(ctx, id, *p.Content); err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}
		embedKnowledgePoint(ctx, q, app.AiClient, kp)
	}

	return c.JSON(http.StatusOK, kp)
}
