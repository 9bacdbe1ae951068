package db

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// SearchResult is a knowledge point with its cosine distance to the query.
type SearchResult struct {
	KnowledgePoint
	Distance float64 `json:"distance"`
}

func (q *Queries) UpdateKnowledgePointEmbedding(ctx context.Context, id int64, embedding pgvector.Vector) error {
	_, err := q.conn.Exec(ctx, `
		UPDATE knowledge_points
		SET embedding = $2
		WHERE id = $1`,
		id, embedding,
	)
	return err
}

type SearchKnowledgePointsParams struct {
	Embedding pgvector.Vector
	MinWeight float64
	Limit     int32
}

// SearchKnowledgePoints returns the closest non-excluded knowledge points by
// cosine distance. Rows without an embedding are skipped.
func (q *Queries) SearchKnowledgePoints(ctx context.Context, params SearchKnowledgePointsParams) ([]SearchResult, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT `+knowledgePointColumns+`, kp.embedding <=> $1 AS distance
		FROM knowledge_points kp
		JOIN documents d ON d.id = kp.document_id
		WHERE kp.embedding IS NOT NULL
		  AND NOT kp.excluded
		  AND kp.weight >= $2
		ORDER BY kp.embedding <=> $1
		LIMIT $3`,
		params.Embedding, params.MinWeight, params.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]SearchResult, 0)
	for rows.Next() {
		var r SearchResult
		err := rows.Scan(
			&r.ID,
			&r.DocumentID,
			&r.DocumentName,
			&r.Content,
			&r.ChunkIndex,
			&r.Weight,
			&r.Excluded,
			&r.IsManual,
			&r.Keywords,
			&r.CreatedAt,
			&r.UpdatedAt,
			&r.Distance,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
