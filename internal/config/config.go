// ABOUTME: Centralized configuration for the underwriting assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the assistant pipeline
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	MinCallGap     time.Duration

	// Chunking settings
	ChunkSize     int
	ChunkOverlap  int
	MinChunkChars int

	// Retrieval settings
	TopK int
	// WeakThreshold is the mean-distance cutoff above which retrieved
	// context is considered too weak to ground an answer. It is specific
	// to the embedding model and should be recalibrated when the model
	// changes.
	WeakThreshold float64

	// Index settings
	IndexPath     string
	PreferKVIndex bool
	KVDBName      string

	// Conversation settings
	MaxHistoryTurns int
	AgentName       string

	// Corpus locations
	ChatDataPath   string
	PolicyDocsPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		MinCallGap:     getEnvSeconds("MIN_LLM_INTERVAL", time.Second),

		ChunkSize:     getEnvInt("CHUNK_SIZE", 1500),
		ChunkOverlap:  getEnvInt("CHUNK_OVERLAP", 50),
		MinChunkChars: getEnvInt("MIN_CHUNK_CHARS", 80),

		TopK:          getEnvInt("RETRIEVAL_TOP_K", 4),
		WeakThreshold: getEnvFloat("WEAK_CONTEXT_THRESHOLD", 1.5),

		IndexPath:     getEnv("VECTOR_DB_PATH", "vector_db"),
		PreferKVIndex: getEnvBool("PREFER_KV_INDEX", false),
		KVDBName:      getEnv("CHARM_DB", "underwriter"),

		MaxHistoryTurns: getEnvInt("MAX_HISTORY_TURNS", 8),
		AgentName:       getEnv("AGENT_NAME", "Ava"),

		ChatDataPath:   getEnv("CHAT_DATA_PATH", "data/chat_data/chat_data.csv"),
		PolicyDocsPath: getEnv("POLICY_DOCS_PATH", "data/policy_documents"),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants. A missing API key is a fatal
// configuration error: the embedding and generation capabilities cannot work
// without it, so it is surfaced immediately rather than silently retried.
func (c *Config) Validate() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap)
	}
	if c.MinChunkChars < 0 {
		return fmt.Errorf("MIN_CHUNK_CHARS must be non-negative, got %d", c.MinChunkChars)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxHistoryTurns <= 0 {
		return fmt.Errorf("MAX_HISTORY_TURNS must be positive, got %d", c.MaxHistoryTurns)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvSeconds parses a plain number of seconds (e.g. "1.5").
func getEnvSeconds(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return time.Duration(f * float64(time.Second))
		}
	}
	return defaultVal
}
