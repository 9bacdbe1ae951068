package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/finetune"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CancelFinetuneJobHandler cancels a running fine-tuning job at the provider
// and marks it cancelled locally.
func CancelFinetuneJobHandler(c echo.Context) error {
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	job, err := q.GetFinetuneJob(ctx, c.Param("job_id"))
	if err != nil {
		return c.String(http.StatusNotFound, "job not found")
	}

	if finetune.IsTerminalStatus(job.Status) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "job already " + job.Status})
	}

	if app.Tuner != nil && job.ProviderJobID != "" {
		if _, err := app.Tuner.CancelFineTuningJob(ctx, job.ProviderJobID); err != nil {
			logger.Warn("[Finetune] Provider cancel failed", "jobId", job.JobID, "error", err)
		}
	}

	job, err = q.UpdateFinetuneJobStatus(ctx, job.JobID, "cancelled", "")
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	logger.Info("[Finetune] Cancelled job", "jobId", job.JobID)

	return c.JSON(http.StatusOK, map[string]any{"job": job})
}
