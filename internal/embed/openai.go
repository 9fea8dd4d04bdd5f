package embed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultModel = "text-embedding-3-small"

// OpenAIConfig holds configuration for the OpenAI-compatible embeddings
// client.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string        // Optional; any /v1-compatible endpoint
	Model      string        // Default "text-embedding-3-small"
	MaxRetries int           // Retry attempts for transient failures
	RetryDelay time.Duration // Base delay between retries
	Timeout    time.Duration // HTTP timeout per request
}

// OpenAIEmbedder implements Embedder using the official OpenAI SDK
// against any compatible embeddings endpoint.
type OpenAIEmbedder struct {
	client     openai.Client
	model      string
	maxRetries uint
	retryDelay time.Duration
	stats      *Stats
}

// NewOpenAIEmbedder creates an embeddings client.
func NewOpenAIEmbedder(cfg OpenAIConfig) *OpenAIEmbedder {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIEmbedder{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		maxRetries: uint(cfg.MaxRetries),
		retryDelay: cfg.RetryDelay,
		stats:      NewStats(time.Hour),
	}
}

// Embed requests embeddings for texts in a single batch call.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	start := time.Now()
	var resp *openai.CreateEmbeddingResponse
	err := retry.Do(
		func() error {
			r, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
				Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
				Model: openai.EmbeddingModel(e.model),
			})
			if err != nil {
				return err
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(e.maxRetries),
		retry.Delay(e.retryDelay),
	)
	e.stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return nil, fmt.Errorf("embeddings api: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings api: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		idx := int(d.Index)
		if idx < 0 || idx >= len(out) {
			return nil, fmt.Errorf("embeddings api: vector index %d out of range", idx)
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		out[idx] = vec
	}
	return out, nil
}

// Stats returns the latency recorder for this client.
func (e *OpenAIEmbedder) Stats() *Stats {
	return e.stats
}
