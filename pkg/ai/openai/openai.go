package openai

import (
	"sync"

	"github.com/privatetune/backend/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// OpenAIClient talks to OpenAI-compatible endpoints for embeddings, chat
// completions and fine-tuning. Separate clients are kept for embeddings and
// chat so the two concerns can point at different providers.
//
// An OpenAIClient should be created using NewOpenAIClient.
type OpenAIClient struct {
	embeddingModel   string
	completionModel  string
	extractionModel  string
	fineTuningSuffix string

	embeddingURL string
	embeddingKey string
	chatURL      string
	chatKey      string

	embedDim   int
	timeoutMin int

	embeddingLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient      *openai.Client
	EmbeddingClient *openai.Client
}

// NewOpenAIClientParams defines the configuration for creating an OpenAIClient.
//
// EmbeddingModel is used for vector embeddings, CompletionModel for free-form
// generation and ExtractionModel for structured keyword extraction. The URL
// fields may be left empty to use the official OpenAI endpoint.
type NewOpenAIClientParams struct {
	EmbeddingModel   string
	CompletionModel  string
	ExtractionModel  string
	FineTuningSuffix string

	EmbeddingURL string
	EmbeddingKey string
	ChatURL      string
	ChatKey      string

	EmbedDim   int
	TimeoutMin int

	MaxConcurrentEmbeddings int64
}

// NewOpenAIClient creates a client configured with the provided parameters.
//
// Example:
//
//	client := openai.NewOpenAIClient(openai.NewOpenAIClientParams{
//		EmbeddingModel:  "text-embedding-3-small",
//		CompletionModel: "gpt-4o-mini",
//		ExtractionModel: "gpt-4o-mini",
//		ChatKey:         os.Getenv("OPENAI_API_KEY"),
//		EmbeddingKey:    os.Getenv("OPENAI_API_KEY"),
//		EmbedDim:        1536,
//	})
func NewOpenAIClient(params NewOpenAIClientParams) *OpenAIClient {
	if params.TimeoutMin <= 0 {
		params.TimeoutMin = 5
	}
	if params.MaxConcurrentEmbeddings <= 0 {
		params.MaxConcurrentEmbeddings = 4
	}

	return &OpenAIClient{
		embeddingModel:   params.EmbeddingModel,
		completionModel:  params.CompletionModel,
		extractionModel:  params.ExtractionModel,
		fineTuningSuffix: params.FineTuningSuffix,

		embeddingURL: params.EmbeddingURL,
		embeddingKey: params.EmbeddingKey,
		chatURL:      params.ChatURL,
		chatKey:      params.ChatKey,

		embedDim:   params.EmbedDim,
		timeoutMin: params.TimeoutMin,

		embeddingLock: semaphore.NewWeighted(params.MaxConcurrentEmbeddings),

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient:      newOpenaiClient(params.ChatURL, params.ChatKey),
		EmbeddingClient: newOpenaiClient(params.EmbeddingURL, params.EmbeddingKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
