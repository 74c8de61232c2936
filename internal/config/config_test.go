// ABOUTME: Tests for environment-driven configuration
// ABOUTME: Verifies defaults, overrides, and validation failures
package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.ChunkSize != 1500 || cfg.ChunkOverlap != 50 || cfg.MinChunkChars != 80 {
		t.Errorf("chunking = %d/%d/%d", cfg.ChunkSize, cfg.ChunkOverlap, cfg.MinChunkChars)
	}
	if cfg.TopK != 4 {
		t.Errorf("TopK = %d", cfg.TopK)
	}
	if cfg.WeakThreshold != 1.5 {
		t.Errorf("WeakThreshold = %v", cfg.WeakThreshold)
	}
	if cfg.IndexPath != "vector_db" {
		t.Errorf("IndexPath = %q", cfg.IndexPath)
	}
	if cfg.PreferKVIndex {
		t.Error("PreferKVIndex should default to false")
	}
	if cfg.AgentName != "Ava" {
		t.Errorf("AgentName = %q", cfg.AgentName)
	}
	if cfg.MaxHistoryTurns != 8 {
		t.Errorf("MaxHistoryTurns = %d", cfg.MaxHistoryTurns)
	}
	if cfg.MinCallGap != time.Second {
		t.Errorf("MinCallGap = %v", cfg.MinCallGap)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("CHUNK_SIZE", "800")
	t.Setenv("RETRIEVAL_TOP_K", "6")
	t.Setenv("WEAK_CONTEXT_THRESHOLD", "1.2")
	t.Setenv("PREFER_KV_INDEX", "true")
	t.Setenv("AGENT_NAME", "Quinn")
	t.Setenv("MIN_LLM_INTERVAL", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ChunkSize != 800 {
		t.Errorf("ChunkSize = %d", cfg.ChunkSize)
	}
	if cfg.TopK != 6 {
		t.Errorf("TopK = %d", cfg.TopK)
	}
	if cfg.WeakThreshold != 1.2 {
		t.Errorf("WeakThreshold = %v", cfg.WeakThreshold)
	}
	if !cfg.PreferKVIndex {
		t.Error("PreferKVIndex should be true")
	}
	if cfg.AgentName != "Quinn" {
		t.Errorf("AgentName = %q", cfg.AgentName)
	}
	// MIN_LLM_INTERVAL is plain seconds, not a duration string
	if cfg.MinCallGap != 2*time.Second {
		t.Errorf("MinCallGap = %v, want 2s", cfg.MinCallGap)
	}
}

func TestLoad_MinIntervalFractionalSeconds(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("MIN_LLM_INTERVAL", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinCallGap != 500*time.Millisecond {
		t.Errorf("MinCallGap = %v, want 500ms", cfg.MinCallGap)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			OpenAIKey:       "k",
			ChunkSize:       1500,
			ChunkOverlap:    50,
			MinChunkChars:   80,
			TopK:            4,
			MaxRetries:      3,
			MaxHistoryTurns: 8,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"overlap >= size", func(c *Config) { c.ChunkOverlap = 1500 }, true},
		{"negative min chars", func(c *Config) { c.MinChunkChars = -1 }, true},
		{"zero top k", func(c *Config) { c.TopK = 0 }, true},
		{"retries too high", func(c *Config) { c.MaxRetries = 11 }, true},
		{"zero history", func(c *Config) { c.MaxHistoryTurns = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
