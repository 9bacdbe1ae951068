package routes

import (
	"encoding/json"
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/finetune"
	"github.com/privatetune/backend/internal/queue"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/internal/util"
	"github.com/privatetune/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateFinetuneJobHandler assembles a dataset estimate, records the job and
// hands submission off to the worker.
func CreateFinetuneJobHandler(c echo.Context) error {
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
	app := c.(*middleware.AppContext).App

	if app.Tuner == nil {
		return c.String(http.StatusServiceUnavailable, "no fine-tuning provider configured")
	}

	q := db.New(app.DBConn)

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
	cost := finetune.EstimateCost(tokens, finetune.PricePer1K(p.BaseModel))

	jobID, err := gonanoid.New()
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	job, err := q.CreateFinetuneJob(ctx, db.CreateFinetuneJobParams{
		JobID:     jobID,
		Platform:  finetune.PlatformOpenAI,
		BaseModel: p.BaseModel,
		Status:    "pending",
		CostUsd:   cost,
	})
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	msg, err := json.Marshal(queue.FinetuneMsg{
		JobID:        jobID,
		MinWeight:    p.MinWeight,
		SystemPrompt: p.SystemPrompt,
	})
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if err := queue.PublishFIFO(app.Queue, queue.FinetuneQueue, msg); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	logger.Info("[Finetune] Created job", "jobId", jobID, "baseModel", p.BaseModel, "examples", examples, "tokens", tokens)

	return c.JSON(http.StatusCreated, map[string]any{
		"job":                job,
		"examples":           examples,
		"estimated_tokens":   tokens,
		"estimated_cost_usd": cost,
	})
}
