package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/finetune"
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetFinetuneJobHandler returns a single job, refreshing its status from the
// provider first when the job is still in flight.
func GetFinetuneJobHandler(c echo.Context) error {
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	job, err := q.GetFinetuneJob(ctx, c.Param("job_id"))
	if err != nil {
		return c.String(http.StatusNotFound, "job not found")
	}

	if app.Tuner != nil && job.ProviderJobID != "" && !finetune.IsTerminalStatus(job.Status) {
		remote, err := app.Tuner.GetFineTuningJob(ctx, job.ProviderJobID)
		if err != nil {
			logger.Warn("[Finetune] Failed to refresh job status", "jobId", job.JobID, "error", err)
		} else {
			job, err = q.UpdateFinetuneJob(ctx, db.UpdateFinetuneJobParams{
				JobID:          job.JobID,
				ProviderJobID:  job.ProviderJobID,
				Status:         remote.Status,
				Progress:       finetune.StatusProgress(remote.Status),
				TrainedTokens:  remote.TrainedTokens,
				FineTunedModel: remote.FineTunedModel,
				TrainingFileID: job.TrainingFileID,
				Error:          remote.Error,
			})
			if err != nil {
				return c.String(http.StatusInternalServerError, err.Error())
			}
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"job": job})
}
