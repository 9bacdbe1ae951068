package db

import (
	"context"
)

type AddProcessingStatParams struct {
	DocumentID int64
	SizeBytes  int64
	DurationMs int64
}

// AddProcessingStat records how long a document of a given size took to
// process.
func (q *Queries) AddProcessingStat(ctx context.Context, params AddProcessingStatParams) error {
	_, err := q.conn.Exec(ctx, `
		INSERT INTO processing_stats (document_id, size_bytes, duration_ms)
		VALUES ($1, $2, $3)`,
		params.DocumentID, params.SizeBytes, params.DurationMs,
	)
	return err
}

// PredictProcessingTime estimates the processing duration for a document of
// sizeBytes from the average observed throughput. Returns 0 when no stats
// exist yet.
func (q *Queries) PredictProcessingTime(ctx context.Context, sizeBytes int64) (int64, error) {
	var ms float64
	err := q.conn.QueryRow(ctx, `
		SELECT COALESCE(AVG(duration_ms::float8 / NULLIF(size_bytes, 0)), 0) * $1
		FROM processing_stats`,
		sizeBytes,
	).Scan(&ms)
	if err != nil {
		return 0, err
	}
	return int64(ms), nil
}
