package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/finetune"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/internal/util"

	"github.com/labstack/echo/v4"
)

// EstimateFinetuneHandler prices a dataset without creating a job.
func EstimateFinetuneHandler(c echo.Context) error {
	type params struct {
		BaseModel    string  `json:"base_model" validate:"required,min=1"`
		MinWeight    float64 `json:"min_weight" validate:"omitempty,gte=1,lte=5"`
		SystemPrompt string  `json:"system_prompt"`
	}

	p := new(params)
	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if p.MinWeight == 0 {
		p.MinWeight = 1
	}

	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)

	points, err := q.GetKnowledgePoints(ctx, db.GetKnowledgePointsParams{
		MinWeight: p.MinWeight,
		Limit:     1_000_000,
	})
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	data, examples, err := finetune.BuildDataset(points, p.SystemPrompt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	tokens, err := finetune.CountTokens(data, util.GetEnvString("AI_ENCODING", "o200k_base"))
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"examples":           examples,
		"estimated_tokens":   tokens,
		"estimated_cost_usd": finetune.EstimateCost(tokens, finetune.PricePer1K(p.BaseModel)),
	})
}
