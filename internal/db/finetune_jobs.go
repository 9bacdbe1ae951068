package db

import (
	"context"
)

const finetuneJobColumns = `id, job_id, provider_job_id, platform, base_model, status, progress, cost_usd,
	trained_tokens, fine_tuned_model, training_file_id, error, created_at, updated_at`

func scanFinetuneJob(row interface{ Scan(dest ...any) error }) (FinetuneJob, error) {
	var j FinetuneJob
	err := row.Scan(
		&j.ID,
		&j.JobID,
		&j.ProviderJobID,
		&j.Platform,
		&j.BaseModel,
		&j.Status,
		&j.Progress,
		&j.CostUsd,
		&j.TrainedTokens,
		&j.FineTunedModel,
		&j.TrainingFileID,
		&j.Error,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	return j, err
}

type CreateFinetuneJobParams struct {
	JobID     string
	Platform  string
	BaseModel string
	Status    string
	CostUsd   float64
}

func (q *Queries) CreateFinetuneJob(ctx context.Context, params CreateFinetuneJobParams) (FinetuneJob, error) {
	row := q.conn.QueryRow(ctx, `
		INSERT INTO finetune_jobs (job_id, platform, base_model, status, cost_usd)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+finetuneJobColumns,
		params.JobID, params.Platform, params.BaseModel, params.Status, params.CostUsd,
	)
	return scanFinetuneJob(row)
}

func (q *Queries) GetFinetuneJobs(ctx context.Context) ([]FinetuneJob, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT `+finetuneJobColumns+`
		FROM finetune_jobs
		ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]FinetuneJob, 0)
	for rows.Next() {
		j, err := scanFinetuneJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (q *Queries) GetFinetuneJob(ctx context.Context, jobID string) (FinetuneJob, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT `+finetuneJobColumns+`
		FROM finetune_jobs
		WHERE job_id = $1`,
		jobID,
	)
	return scanFinetuneJob(row)
}

func (q *Queries) UpdateFinetuneJobStatus(ctx context.Context, jobID string, status string, errMsg string) (FinetuneJob, error) {
	row := q.conn.QueryRow(ctx, `
		UPDATE finetune_jobs
		SET status = $2, error = $3, updated_at = now()
		WHERE job_id = $1
		RETURNING `+finetuneJobColumns,
		jobID, status, errMsg,
	)
	return scanFinetuneJob(row)
}

type UpdateFinetuneJobParams struct {
	JobID          string
	ProviderJobID  string
	Status         string
	Progress       float64
	TrainedTokens  int64
	FineTunedModel string
	TrainingFileID string
	Error          string
}

func (q *Queries) UpdateFinetuneJob(ctx context.Context, params UpdateFinetuneJobParams) (FinetuneJob, error) {
	row := q.conn.QueryRow(ctx, `
		UPDATE finetune_jobs
		SET provider_job_id = $2,
			status = $3,
			progress = $4,
			trained_tokens = $5,
			fine_tuned_model = $6,
			training_file_id = $7,
			error = $8,
			updated_at = now()
		WHERE job_id = $1
		RETURNING `+finetuneJobColumns,
		params.JobID, params.ProviderJobID, params.Status, params.Progress,
		params.TrainedTokens, params.FineTunedModel, params.TrainingFileID, params.Error,
	)
	return scanFinetuneJob(row)
}
