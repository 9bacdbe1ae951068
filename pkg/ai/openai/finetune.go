package openai

import (
	"bytes"
	"context"
	"fmt"

	"github.com/privatetune/backend/pkg/ai"

	"github.com/openai/openai-go/v3"
)

// UploadTrainingFile uploads a JSONL training file and returns its file ID.
// The file must contain one chat-format training example per line.
func (c *OpenAIClient) UploadTrainingFile(ctx context.Context, name string, data []byte) (string, error) {
	if c.ChatClient == nil {
		return "", fmt.Errorf("openai client not configured")
	}

	file, err := c.ChatClient.Files.New(ctx, openai.FileNewParams{
		File:    openai.File(bytes.NewReader(data), name, "application/jsonl"),
		Purpose: openai.FilePurposeFineTune,
	})
	if err != nil {
		return "", fmt.Errorf("upload training file: %w", err)
	}
	return file.ID, nil
}

// CreateFineTuningJob starts a supervised fine-tuning job on the given
// training file and base model.
func (c *OpenAIClient) CreateFineTuningJob(ctx context.Context, fileID string, model string) (ai.FineTuneJob, error) {
	if c.ChatClient == nil {
		return ai.FineTuneJob{}, fmt.Errorf("openai client not configured")
	}

	params := openai.FineTuningJobNewParams{
		Model:        openai.FineTuningJobNewParamsModel(model),
		TrainingFile: fileID,
	}
	if c.fineTuningSuffix != "" {
		params.Suffix = openai.String(c.fineTuningSuffix)
	}

	job, err := c.ChatClient.FineTuning.Jobs.New(ctx, params)
	if err != nil {
		return ai.FineTuneJob{}, fmt.Errorf("create fine-tuning job: %w", err)
	}
	return fineTuneJobFromResponse(job), nil
}

// GetFineTuningJob fetches the current state of a fine-tuning job.
func (c *OpenAIClient) GetFineTuningJob(ctx context.Context, jobID string) (ai.FineTuneJob, error) {
	if c.ChatClient == nil {
		return ai.FineTuneJob{}, fmt.Errorf("openai client not configured")
	}

	job, err := c.ChatClient.FineTuning.Jobs.Get(ctx, jobID)
	if err != nil {
		return ai.FineTuneJob{}, fmt.Errorf("get fine-tuning job: %w", err)
	}
	return fineTuneJobFromResponse(job), nil
}

// CancelFineTuningJob requests cancellation of a running fine-tuning job.
func (c *OpenAIClient) CancelFineTuningJob(ctx context.Context, jobID string) (ai.FineTuneJob, error) {
	if c.ChatClient == nil {
		return ai.FineTuneJob{}, fmt.Errorf("openai client not configured")
	}

	job, err := c.ChatClient.FineTuning.Jobs.Cancel(ctx, jobID)
	if err != nil {
		return ai.FineTuneJob{}, fmt.Errorf("cancel fine-tuning job: %w", err)
	}
	return fineTuneJobFromResponse(job), nil
}

func fineTuneJobFromResponse(job *openai.FineTuningJob) ai.FineTuneJob {
	out := ai.FineTuneJob{
		ID:             job.ID,
		Status:         string(job.Status),
		FineTunedModel: job.FineTunedModel,
		TrainedTokens:  job.TrainedTokens,
	}
	if job.Error.Message != "" {
		out.Error = job.Error.Message
	}
	return out
}
