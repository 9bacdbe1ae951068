package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/internal/finetune"
	"github.com/privatetune/backend/internal/storage"
	"github.com/privatetune/backend/internal/timing"
	"github.com/privatetune/backend/internal/util"
	"github.com/privatetune/backend/pkg/ai"
	"github.com/privatetune/backend/pkg/extract"
	"github.com/privatetune/backend/pkg/leaselock"
	"github.com/privatetune/backend/pkg/logger"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"
)

const defaultKeywordsPerPoint = 5

// ProcessDocumentMessage downloads a document from S3, chunks it into
// knowledge points, extracts keywords and embeddings, and stores the result.
// Re-extraction replaces previous auto-extracted points; manual points are
// kept.
func ProcessDocumentMessage(
	ctx context.Context,
	s3Client *awss3.Client,
	aiClient ai.Client,
	conn *pgxpool.Pool,
	msg string,
) (err error) {
	data := new(DocumentMsg)
	if err = json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	q := db.New(conn)

	doc, err := q.GetDocument(ctx, data.DocumentID)
	if err != nil {
		return fmt.Errorf("document %d not found: %w", data.DocumentID, err)
	}
	startTime := time.Now()

	if _, err = q.UpdateDocumentStatus(ctx, doc.ID, db.DocumentStatusProcessing); err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		updateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, updateErr := q.UpdateDocumentStatus(updateCtx, doc.ID, db.DocumentStatusFailed); updateErr != nil {
			logger.Error("[Process] Failed to mark document failed", "document_id", doc.ID, "err", updateErr)
		}
	}()

	fileBytes, err := storage.GetFile(ctx, s3Client, doc.FileKey)
	if err != nil {
		return err
	}

	encoder := util.GetEnvString("AI_ENCODING", "o200k_base")
	maxTokens := int(util.GetEnvNumeric("KP_CHUNK_TOKENS", 400))

	chunks, err := extract.ChunkText(string(fileBytes), encoder, maxTokens)
	if err != nil {
		return err
	}
	logger.Info("[Process] Document chunked", "document_id", doc.ID, "chunks", len(chunks))

	if err = q.DeleteExtractedKnowledgePoints(ctx, doc.ID); err != nil {
		return err
	}

	if len(chunks) == 0 {
		_, err = q.UpdateDocumentStatus(ctx, doc.ID, db.DocumentStatusReady)
		return err
	}

	defaultWeight := util.GetEnvNumeric("KP_DEFAULT_WEIGHT", 3)

	params := db.CreateKnowledgePointsParams{
		DocumentID:   doc.ID,
		Contents:     make([]string, 0, len(chunks)),
		ChunkIndexes: make([]int32, 0, len(chunks)),
		Weights:      make([]float64, 0, len(chunks)),
		Keywords:     make([]string, 0, len(chunks)),
	}
	encodedKeywords := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(util.GetEnvNumeric("KP_KEYWORD_WORKERS", 4)))
	for i, chunk := range chunks {
		g.Go(func() error {
			keywords := extract.Keywords(gctx, aiClient, chunk.Text, defaultKeywordsPerPoint)
			encoded, encErr := json.Marshal(keywords)
			if encErr != nil {
				return encErr
			}
			encodedKeywords[i] = string(encoded)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	for i, chunk := range chunks {
		params.Contents = append(params.Contents, chunk.Text)
		params.ChunkIndexes = append(params.ChunkIndexes, int32(chunk.Index))
		params.Weights = append(params.Weights, defaultWeight)
		params.Keywords = append(params.Keywords, encodedKeywords[i])
	}

	ids, err := q.CreateKnowledgePoints(ctx, params)
	if err != nil {
		return err
	}

	inputs := make([][]byte, len(chunks))
	for i, chunk := range chunks {
		inputs[i] = []byte(chunk.Text)
	}
	embeddings, err := aiClient.GenerateEmbeddings(ctx, inputs)
	if err != nil {
		return err
	}
	for i, emb := range embeddings {
		if err = q.UpdateKnowledgePointEmbedding(ctx, ids[i], pgvector.NewVector(emb)); err != nil {
			return err
		}
	}

	_, err = q.UpdateDocumentStatus(ctx, doc.ID, db.DocumentStatusReady)
	if err != nil {
		return err
	}

	durationMs := time.Since(startTime).Milliseconds()
	if statErr := timing.AddDocumentProcessingTime(ctx, doc.ID, doc.SizeBytes, durationMs, conn); statErr != nil {
		logger.Warn("[Process] Failed to record processing time", "document_id", doc.ID, "err", statErr)
	}

	logger.Info("[Process] Document processed", "document_id", doc.ID, "knowledge_points", len(ids), "duration_ms", durationMs)
	return nil
}

// ProcessFinetuneMessage assembles the training dataset for a submitted job,
// uploads it and starts the provider-side fine-tuning run. A lease lock keyed
// by job id keeps redelivered messages from submitting the same job twice.
func ProcessFinetuneMessage(
	ctx context.Context,
	tuner ai.FineTuner,
	conn *pgxpool.Pool,
	msg string,
) error {
	data := new(FinetuneMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	locks := leaselock.New(conn)
	err := locks.WithLease(ctx, "finetune:"+data.JobID, 10*time.Minute, func(ctx context.Context) error {
		return submitFinetuneJob(ctx, tuner, conn, data)
	})
	if errors.Is(err, leaselock.ErrBusy) {
		logger.Warn("[Finetune] Job already being submitted elsewhere", "job_id", data.JobID)
		return nil
	}
	return err
}

func submitFinetuneJob(
	ctx context.Context,
	tuner ai.FineTuner,
	conn *pgxpool.Pool,
	data *FinetuneMsg,
) (err error) {
	q := db.New(conn)

	job, err := q.GetFinetuneJob(ctx, data.JobID)
	if err != nil {
		return fmt.Errorf("finetune job %s not found: %w", data.JobID, err)
	}
	defer func() {
		if err == nil {
			return
		}
		updateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, updateErr := q.UpdateFinetuneJobStatus(updateCtx, job.JobID, "failed", err.Error()); updateErr != nil {
			logger.Error("[Finetune] Failed to mark job failed", "job_id", job.JobID, "err", updateErr)
		}
	}()

	points, err := q.GetKnowledgePoints(ctx, db.GetKnowledgePointsParams{
		MinWeight: data.MinWeight,
		Limit:     1_000_000,
	})
	if err != nil {
		return err
	}

	dataset, examples, err := finetune.BuildDataset(points, data.SystemPrompt)
	if err != nil {
		return err
	}
	logger.Info("[Finetune] Dataset assembled", "job_id", job.JobID, "examples", examples)

	fileID, err := tuner.UploadTrainingFile(ctx, fmt.Sprintf("%s.jsonl", job.JobID), dataset)
	if err != nil {
		return err
	}

	providerJob, err := tuner.CreateFineTuningJob(ctx, fileID, job.BaseModel)
	if err != nil {
		return err
	}

	_, err = q.UpdateFinetuneJob(ctx, db.UpdateFinetuneJobParams{
		JobID:          job.JobID,
		ProviderJobID:  providerJob.ID,
		Status:         providerJob.Status,
		Progress:       finetune.StatusProgress(providerJob.Status),
		TrainedTokens:  providerJob.TrainedTokens,
		FineTunedModel: providerJob.FineTunedModel,
		TrainingFileID: fileID,
		Error:          providerJob.Error,
	})
	if err != nil {
		return err
	}

	logger.Info("[Finetune] Job submitted", "job_id", job.JobID, "provider_job_id", providerJob.ID)
	return nil
}
