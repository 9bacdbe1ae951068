package ai

import (
	"context"
)

// ChatMessage represents a single message in a chat conversation.
//
// Role must be one of:
//   - "user"      → a user-provided message
//   - "assistant" → a message from the AI assistant
type ChatMessage struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// GenerateOptions holds configuration for AI generation requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
	Thinking      string   // Extended thinking mode configuration
}

// ModelMetrics contains performance metrics from AI model operations.
type ModelMetrics struct {
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	TotalTokens    int     `json:"total_tokens"`
	DurationMs     int64   `json:"duration_ms"`
	TokenPerSecond float32 `json:"tokens_per_second"`
}

// GenerateOption is a functional option for configuring AI generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system prompts
// to prepend to the generation request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
// Higher values (e.g., 1.0) produce more random outputs, while lower values
// (e.g., 0.2) make outputs more focused and deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithThinking returns a GenerateOption that enables extended thinking mode.
// The thinking parameter specifies the thinking budget or mode configuration.
func WithThinking(thinking string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Thinking = thinking
	}
}

// Client defines the interface for AI operations used during document
// processing: keyword extraction, embeddings for semantic search, and
// free-form completions. Implementations exist for OpenAI-compatible
// endpoints and for locally-hosted Ollama models.
type Client interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
	GenerateCompletionWithFormat(
		ctx context.Context,
		name string,
		description string,
		prompt string,
		out any,
		opts ...GenerateOption,
	) error
	GenerateChat(
		ctx context.Context,
		messages []ChatMessage,
		opts ...GenerateOption,
	) (string, error)

	GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, inputs [][]byte) ([][]float32, error)

	ResetMetrics()
	GetMetrics() ModelMetrics
}

// FineTuneJob is the provider-neutral view of a fine-tuning job.
type FineTuneJob struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	FineTunedModel string `json:"fine_tuned_model"`
	TrainedTokens  int64  `json:"trained_tokens"`
	Error          string `json:"error,omitempty"`
}

// FineTuner is implemented by clients that can run supervised fine-tuning
// on an uploaded training file.
type FineTuner interface {
	UploadTrainingFile(ctx context.Context, name string, data []byte) (string, error)
	CreateFineTuningJob(ctx context.Context, fileID string, model string) (FineTuneJob, error)
	GetFineTuningJob(ctx context.Context, jobID string) (FineTuneJob, error)
	CancelFineTuningJob(ctx context.Context, jobID string) (FineTuneJob, error)
}
