package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/privatetune/backend/pkg/ai"
)

type AppUser struct {
	UserID      int64
	Role        string
	Permissions []string
}

// App bundles the shared clients every handler needs.
type App struct {
	DBConn       *pgxpool.Pool
	Queue        *amqp091.Channel
	S3           *s3.Client
	AiClient     ai.Client
	Tuner        ai.FineTuner
	JWTSecret    []byte
	MasterAPIKey string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
