package routes

import (
	"net/http"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetFinetuneJobsHandler lists all fine-tuning jobs, newest first.
func GetFinetuneJobsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)

	jobs, err := q.GetFinetuneJobs(ctx)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{"jobs": jobs})
}
