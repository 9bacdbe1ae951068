package db

import (
	"context"
)

const documentColumns = `id, name, file_key, content_type, size_bytes, status, created_at, updated_at`

func scanDocument(row interface{ Scan(dest ...any) error }) (Document, error) {
	var d Document
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.FileKey,
		&d.ContentType,
		&d.SizeBytes,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

type CreateDocumentParams struct {
	Name        string
	FileKey     string
	ContentType string
	SizeBytes   int64
}

func (q *Queries) CreateDocument(ctx context.Context, params CreateDocumentParams) (Document, error) {
	row := q.conn.QueryRow(ctx, `
		INSERT INTO documents (name, file_key, content_type, size_bytes, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING `+documentColumns,
		params.Name, params.FileKey, params.ContentType, params.SizeBytes,
	)
	return scanDocument(row)
}

func (q *Queries) GetDocuments(ctx context.Context) ([]Document, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (q *Queries) GetDocument(ctx context.Context, id int64) (Document, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = $1`,
		id,
	)
	return scanDocument(row)
}

func (q *Queries) UpdateDocumentStatus(ctx context.Context, id int64, status string) (Document, error) {
	row := q.conn.QueryRow(ctx, `
		UPDATE documents
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+documentColumns,
		id, status,
	)
	return scanDocument(row)
}

// DeleteDocument removes a document and returns the deleted row so callers
// can clean up the stored file. Knowledge points cascade.
func (q *Queries) DeleteDocument(ctx context.Context, id int64) (Document, error) {
	row := q.conn.QueryRow(ctx, `
		DELETE FROM documents
		WHERE id = $1
		RETURNING `+documentColumns,
		id,
	)
	return scanDocument(row)
}
