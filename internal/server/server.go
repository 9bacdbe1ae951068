package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/privatetune/backend/internal/queue"
	mid "github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/internal/storage"
	"github.com/privatetune/backend/internal/util"
	"github.com/privatetune/backend/pkg/ai"
	"github.com/privatetune/backend/pkg/ai/ollama"
	"github.com/privatetune/backend/pkg/ai/openai"
	"github.com/privatetune/backend/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// NewAIClient builds the model client selected by AI_ADAPTER. The OpenAI
// adapter doubles as the fine-tuning provider; Ollama cannot fine-tune.
func NewAIClient() (ai.Client, ai.FineTuner) {
	embedDim := int(util.GetEnvNumeric("AI_EMBED_DIM", 1536))
	timeoutMin := int(util.GetEnvNumeric("AI_TIMEOUT_MIN", 0))

	switch util.GetEnvString("AI_ADAPTER", "openai") {
	case "ollama":
		client, err := ollama.NewOllamaClient(ollama.NewOllamaClientParams{
			EmbeddingModel:  util.GetEnvString("AI_EMBED_MODEL", "nomic-embed-text"),
			CompletionModel: util.GetEnvString("AI_CHAT_MODEL", "llama3.1"),
			ExtractionModel: util.GetEnvString("AI_CHAT_EXTRACT_MODEL", util.GetEnvString("AI_CHAT_MODEL", "llama3.1")),
			BaseURL:         util.GetEnv("AI_CHAT_URL"),
			ApiKey:          util.GetEnv("AI_CHAT_KEY"),
			EmbedDim:        embedDim,
			TimeoutMin:      timeoutMin,
		})
		if err != nil {
			logger.Fatal("Failed to create ollama client", "err", err)
		}
		return client, nil
	default:
		client := openai.NewOpenAIClient(openai.NewOpenAIClientParams{
			EmbeddingModel:   util.GetEnvString("AI_EMBED_MODEL", "text-embedding-3-small"),
			CompletionModel:  util.GetEnvString("AI_CHAT_MODEL", "gpt-4o-mini"),
			ExtractionModel:  util.GetEnvString("AI_CHAT_EXTRACT_MODEL", util.GetEnvString("AI_CHAT_MODEL", "gpt-4o-mini")),
			FineTuningSuffix: util.GetEnvString("AI_FINETUNE_SUFFIX", "privatetune"),
			EmbeddingURL:     util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey:     util.GetEnv("AI_EMBED_KEY"),
			ChatURL:          util.GetEnv("AI_CHAT_URL"),
			ChatKey:          util.GetEnv("AI_CHAT_KEY"),
			EmbedDim:         embedDim,
			TimeoutMin:       timeoutMin,
		})
		return client, client
	}
}

func runMigrations(databaseURL string) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logger.Fatal("Failed to init migrations", "err", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	runMigrations(databaseURL)

	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		logger.Fatal("Failed to parse database url", "err", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	conn, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	if err := queue.SetupQueues(ch, queue.Queues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3 := storage.NewS3Client(ctx)

	aiClient, tuner := NewAIClient()

	app := &mid.App{
		DBConn:       conn,
		Queue:        ch,
		S3:           s3,
		AiClient:     aiClient,
		Tuner:        tuner,
		JWTSecret:    []byte(util.GetEnv("JWT_SECRET")),
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("[Server] Request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("512M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
