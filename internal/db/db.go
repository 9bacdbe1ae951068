package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IConn is the subset of pgx connection behavior the query layer needs.
// Both *pgxpool.Pool and pgx.Tx satisfy it.
type IConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

// Queries bundles the hand-written SQL queries for the curation schema.
type Queries struct {
	conn IConn
}

func New(conn IConn) *Queries {
	return &Queries{conn: conn}
}

// Document is a source file that knowledge points are extracted from.
type Document struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FileKey     string    `json:"file_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Document processing states.
const (
	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
	DocumentStatusReady      = "ready"
	DocumentStatusFailed     = "failed"
)

// KnowledgePoint is one curated training candidate extracted from a document
// chunk or entered by hand. Keywords holds a JSON-encoded string array; legacy
// rows may contain malformed values, so consumers must parse defensively.
type KnowledgePoint struct {
	ID           int64     `json:"id"`
	DocumentID   int64     `json:"document_id"`
	DocumentName string    `json:"document_name"`
	Content      string    `json:"content"`
	ChunkIndex   int32     `json:"chunk_index"`
	Weight       float64   `json:"weight"`
	Excluded     bool      `json:"excluded"`
	IsManual     bool      `json:"is_manual"`
	Keywords     string    `json:"keywords"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FinetuneJob tracks a fine-tuning run submitted to a provider.
type FinetuneJob struct {
	ID             int64     `json:"id"`
	JobID          string    `json:"job_id"`
	ProviderJobID  string    `json:"provider_job_id"`
	Platform       string    `json:"platform"`
	BaseModel      string    `json:"base_model"`
	Status         string    `json:"status"`
	Progress       float64   `json:"progress"`
	CostUsd        float64   `json:"cost_usd"`
	TrainedTokens  int64     `json:"trained_tokens"`
	FineTunedModel string    `json:"fine_tuned_model"`
	TrainingFileID string    `json:"training_file_id"`
	Error          string    `json:"error"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
