package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/privatetune/backend/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// OllamaClient implements the ai.Client interface using Ollama as the
// backend. It supports text generation, structured extraction and embeddings
// via locally-hosted models.
type OllamaClient struct {
	embeddingModel  string
	completionModel string
	extractionModel string

	embedDim   int
	timeoutMin int

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewOllamaClientParams contains configuration options for creating a new OllamaClient.
type NewOllamaClientParams struct {
	EmbeddingModel  string
	CompletionModel string
	ExtractionModel string

	BaseURL string
	ApiKey  string

	EmbedDim   int
	TimeoutMin int

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewOllamaClient creates a new Ollama-based AI client with the specified
// configuration. It connects to the Ollama server at the given BaseURL
// (or the default if empty).
func NewOllamaClient(params NewOllamaClientParams) (*OllamaClient, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	if params.TimeoutMin <= 0 {
		params.TimeoutMin = 10
	}
	if params.MaxConcurrentRequests <= 0 {
		params.MaxConcurrentRequests = 1
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.ApiKey,
			},
			rt: http.DefaultTransport,
		},
	}

	cli := api.NewClient(u, httpClient)

	return &OllamaClient{
		embeddingModel:  params.EmbeddingModel,
		completionModel: params.CompletionModel,
		extractionModel: params.ExtractionModel,

		embedDim:   params.EmbedDim,
		timeoutMin: params.TimeoutMin,

		reqLock: semaphore.NewWeighted(params.MaxConcurrentRequests),

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		baseURL:    u,
		apiKey:     params.ApiKey,
		httpClient: httpClient,

		Client: cli,
	}, nil
}
