package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth for the HTTP API
	APIKey string

	// Embeddings provider
	EmbedBaseURL    string
	EmbedAPIKey     string
	EmbedModel      string
	EmbedTimeout    time.Duration
	EmbedMaxRetries int
	EmbedRetryDelay time.Duration

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Ranking
	TopSections    int
	TopSentences   int
	MinSentenceLen int
	SnippetLength  int

	// Segmentation heuristics
	HeadingSizeRatio   float64
	FirstBlockTitleCap int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCSIFT_API_KEY"),

		EmbedBaseURL:    os.Getenv("EMBED_BASE_URL"),
		EmbedAPIKey:     envOr("EMBED_API_KEY", os.Getenv("OPENAI_API_KEY")),
		EmbedModel:      envOr("EMBED_MODEL", "text-embedding-3-small"),
		EmbedTimeout:    envDuration("EMBED_TIMEOUT", 60*time.Second),
		EmbedMaxRetries: envInt("EMBED_MAX_RETRIES", 3),
		EmbedRetryDelay: envDuration("EMBED_RETRY_DELAY", 1*time.Second),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		TopSections:    envInt("TOP_SECTIONS", 5),
		TopSentences:   envInt("TOP_SENTENCES", 3),
		MinSentenceLen: envInt("MIN_SENTENCE_LEN", 20),
		SnippetLength:  envInt("SNIPPET_LENGTH", 200),

		HeadingSizeRatio:   envFloat("HEADING_SIZE_RATIO", 1.1),
		FirstBlockTitleCap: envInt("FIRST_BLOCK_TITLE_CAP", 100),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.TopSections <= 0 {
		cfg.TopSections = 5
	}
	if cfg.TopSentences <= 0 {
		cfg.TopSentences = 3
	}
	if cfg.MinSentenceLen <= 0 {
		cfg.MinSentenceLen = 20
	}
	if cfg.SnippetLength <= 0 {
		cfg.SnippetLength = 200
	}
	if cfg.HeadingSizeRatio <= 1 {
		cfg.HeadingSizeRatio = 1.1
	}
	if cfg.FirstBlockTitleCap <= 0 {
		cfg.FirstBlockTitleCap = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// ValidateServe checks the settings the HTTP service requires.
func (c Config) ValidateServe() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCSIFT_API_KEY is required")
	}
	return c.ValidateEmbedding()
}

// ValidateEmbedding checks the settings the relevance pipeline requires.
// Outline extraction alone never touches the embeddings provider.
func (c Config) ValidateEmbedding() error {
	if c.EmbedAPIKey == "" {
		return fmt.Errorf("EMBED_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
