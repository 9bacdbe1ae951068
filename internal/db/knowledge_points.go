package db

import (
	"context"
)

const knowledgePointColumns = `kp.id, kp.document_id, d.name, kp.content, kp.chunk_index,
	kp.weight, kp.excluded, kp.is_manual, kp.keywords, kp.created_at, kp.updated_at`

func scanKnowledgePoint(row interface{ Scan(dest ...any) error }) (KnowledgePoint, error) {
	var kp KnowledgePoint
	err := row.Scan(
		&kp.ID,
		&kp.DocumentID,
		&kp.DocumentName,
		&kp.Content,
		&kp.ChunkIndex,
		&kp.Weight,
		&kp.Excluded,
		&kp.IsManual,
		&kp.Keywords,
		&kp.CreatedAt,
		&kp.UpdatedAt,
	)
	return kp, err
}

// CreateKnowledgePointsParams carries one parallel slice per column. The
// slices must all have the same length.
type CreateKnowledgePointsParams struct {
	DocumentID   int64
	Contents     []string
	ChunkIndexes []int32
	Weights      []float64
	Keywords     []string
}

// CreateKnowledgePoints bulk-inserts extracted knowledge points for a
// document and returns the new row IDs in input order.
func (q *Queries) CreateKnowledgePoints(ctx context.Context, params CreateKnowledgePointsParams) ([]int64, error) {
	rows, err := q.conn.Query(ctx, `
		INSERT INTO knowledge_points (document_id, content, chunk_index, weight, keywords)
		SELECT $1, t.content, t.chunk_index, t.weight, t.keywords
		FROM unnest($2::text[], $3::int[], $4::float8[], $5::text[])
			AS t(content, chunk_index, weight, keywords)
		RETURNING id, chunk_index`,
		params.DocumentID, params.Contents, params.ChunkIndexes, params.Weights, params.Keywords,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byChunk := make(map[int32]int64, len(params.Contents))
	for rows.Next() {
		var (
			id    int64
			chunk int32
		)
		if err := rows.Scan(&id, &chunk); err != nil {
			return nil, err
		}
		byChunk[chunk] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]int64, len(params.ChunkIndexes))
	for i, chunk := range params.ChunkIndexes {
		ids[i] = byChunk[chunk]
	}
	return ids, nil
}

type GetKnowledgePointsParams struct {
	DocumentID      *int64
	MinWeight       float64
	IncludeExcluded bool
	Limit           int32
	Offset          int32
}

// GetKnowledgePoints lists knowledge points joined with their document name,
// ordered by document and chunk position.
func (q *Queries) GetKnowledgePoints(ctx context.Context, params GetKnowledgePointsParams) ([]KnowledgePoint, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT `+knowledgePointColumns+`
		FROM knowledge_points kp
		JOIN documents d ON d.id = kp.document_id
		WHERE ($1::bigint IS NULL OR kp.document_id = $1)
		  AND kp.weight >= $2
		  AND ($3::bool OR NOT kp.excluded)
		ORDER BY kp.document_id, kp.chunk_index, kp.id
		LIMIT $4 OFFSET $5`,
		params.DocumentID, params.MinWeight, params.IncludeExcluded, params.Limit, params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]KnowledgePoint, 0)
	for rows.Next() {
		kp, err := scanKnowledgePoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, kp)
	}
	return points, rows.Err()
}

func (q *Queries) CountKnowledgePoints(ctx context.Context, params GetKnowledgePointsParams) (int64, error) {
	var count int64
	err := q.conn.QueryRow(ctx, `
		SELECT count(*)
		FROM knowledge_points kp
		WHERE ($1::bigint IS NULL OR kp.document_id = $1)
		  AND kp.weight >= $2
		  AND ($3::bool OR NOT kp.excluded)`,
		params.DocumentID, params.MinWeight, params.IncludeExcluded,
	).Scan(&count)
	return count, err
}

func (q *Queries) GetKnowledgePoint(ctx context.Context, id int64) (KnowledgePoint, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT `+knowledgePointColumns+`
		FROM knowledge_points kp
		JOIN documents d ON d.id = kp.document_id
		WHERE kp.id = $1`,
		id,
	)
	return scanKnowledgePoint(row)
}

type CreateManualKnowledgePointParams struct {
	DocumentID int64
	Content    string
	Weight     float64
	Keywords   string
}

// CreateManualKnowledgePoint appends a hand-written knowledge point after the
// document's last chunk so it sorts behind all extracted points.
func (q *Queries) CreateManualKnowledgePoint(ctx context.Context, params CreateManualKnowledgePointParams) (KnowledgePoint, error) {
	row := q.conn.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO knowledge_points (document_id, content, chunk_index, weight, is_manual, keywords)
			VALUES (
				$1, $2,
				(SELECT COALESCE(MAX(chunk_index) + 1, 0) FROM knowledge_points WHERE document_id = $1),
				$3, TRUE, $4
			)
			RETURNING *
		)
		SELECT ins.id, ins.document_id, d.name, ins.content, ins.chunk_index,
			ins.weight, ins.excluded, ins.is_manual, ins.keywords, ins.created_at, ins.updated_at
		FROM ins
		JOIN documents d ON d.id = ins.document_id`,
		params.DocumentID, params.Content, params.Weight, params.Keywords,
	)
	return scanKnowledgePoint(row)
}

func (q *Queries) UpdateKnowledgePointWeight(ctx context.Context, id int64, weight float64) (KnowledgePoint, error) {
	row := q.conn.QueryRow(ctx, `
		WITH upd AS (
			UPDATE knowledge_points
			SET weight = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT upd.id, upd.document_id, d.name, upd.content, upd.chunk_index,
			upd.weight, upd.excluded, upd.is_manual, upd.keywords, upd.created_at, upd.updated_at
		FROM upd
		JOIN documents d ON d.id = upd.document_id`,
		id, weight,
	)
	return scanKnowledgePoint(row)
}

func (q *Queries) SetKnowledgePointExcluded(ctx context.Context, id int64, excluded bool) (KnowledgePoint, error) {
	row := q.conn.QueryRow(ctx, `
		WITH upd AS (
			UPDATE knowledge_points
			SET excluded = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT upd.id, upd.document_id, d.name, upd.content, upd.chunk_index,
			upd.weight, upd.excluded, upd.is_manual, upd.keywords, upd.created_at, upd.updated_at
		FROM upd
		JOIN documents d ON d.id = upd.document_id`,
		id, excluded,
	)
	return scanKnowledgePoint(row)
}

func (q *Queries) UpdateKnowledgePointContent(ctx context.Context, id int64, content string) (KnowledgePoint, error) {
	row := q.conn.QueryRow(ctx, `
		WITH upd AS (
			UPDATE knowledge_points
			SET content = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT upd.id, upd.document_id, d.name, upd.content, upd.chunk_index,
			upd.weight, upd.excluded, upd.is_manual, upd.keywords, upd.created_at, upd.updated_at
		FROM upd
		JOIN documents d ON d.id = upd.document_id`,
		id, content,
	)
	return scanKnowledgePoint(row)
}

func (q *Queries) UpdateKnowledgePointKeywords(ctx context.Context, id int64, keywords string) (KnowledgePoint, error) {
	row := q.conn.QueryRow(ctx, `
		WITH upd AS (
			UPDATE knowledge_points
			SET keywords = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT upd.id, upd.document_id, d.name, upd.content, upd.chunk_index,
			upd.weight, upd.excluded, upd.is_manual, upd.keywords, upd.created_at, upd.updated_at
		FROM upd
		JOIN documents d ON d.id = upd.document_id`,
		id, keywords,
	)
	return scanKnowledgePoint(row)
}

// DeleteKnowledgePoints removes the given rows and reports how many existed.
func (q *Queries) DeleteKnowledgePoints(ctx context.Context, ids []int64) (int64, error) {
	tag, err := q.conn.Exec(ctx, `
		DELETE FROM knowledge_points
		WHERE id = ANY($1::bigint[])`,
		ids,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteExtractedKnowledgePoints clears a document's auto-extracted points
// before reprocessing. Manual points survive.
func (q *Queries) DeleteExtractedKnowledgePoints(ctx context.Context, documentID int64) error {
	_, err := q.conn.Exec(ctx, `
		DELETE FROM knowledge_points
		WHERE document_id = $1 AND NOT is_manual`,
		documentID,
	)
	return err
}
