// Package timing tracks document processing durations so uploads can show
// an expected processing time.
package timing

import (
	"context"

	"github.com/privatetune/backend/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
)

func AddDocumentProcessingTime(
	ctx context.Context,
	documentID, sizeBytes, durationMs int64,
	conn *pgxpool.Pool,
) error {
	q := db.New(conn)

	return q.AddProcessingStat(ctx, db.AddProcessingStatParams{
		DocumentID: documentID,
		SizeBytes:  sizeBytes,
		DurationMs: durationMs,
	})
}

func PredictDocumentProcessingTime(ctx context.Context, sizeBytes int64, conn *pgxpool.Pool) (int64, error) {
	q := db.New(conn)

	return q.PredictProcessingTime(ctx, sizeBytes)
}
