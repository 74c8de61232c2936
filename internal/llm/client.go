// ABOUTME: OpenAI client for embeddings and underwriting answer generation
// ABOUTME: Adds retry with backoff, per-call timeouts, and a process-wide call throttle
package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rajulshakya777/AgentVerse/internal/config"
	"github.com/rajulshakya777/AgentVerse/internal/util"
)

// Client wraps the OpenAI API client with retry logic and call throttling
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration

	// Throttle state. The check/sleep/update sequence runs under the mutex
	// so concurrent callers cannot all sleep against a stale timestamp.
	throttleMu sync.Mutex
	minCallGap time.Duration
	lastCall   time.Time
	sleep      func(time.Duration)
	now        func() time.Time
}

// NewClient creates a Client from configuration. The API key must be present.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &Client{
		client:         openai.NewClient(cfg.OpenAIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
		minCallGap:     cfg.MinCallGap,
		sleep:          time.Sleep,
		now:            time.Now,
	}, nil
}

// EmbedBatch maps texts to embedding vectors in a single API call.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d inputs", attempt+1, len(resp.Data), len(texts))
			continue
		}

		vectors := make([][]float32, len(resp.Data))
		for i, d := range resp.Data {
			vectors[i] = d.Embedding
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("failed to embed %d texts after %d attempts: %w", len(texts), c.maxRetries+1, lastErr)
}

// Embed maps a single text to its embedding vector.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Generate produces text for the given prompt, respecting the minimum
// interval between generation calls. Deterministic output (temperature 0).
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.waitTurn()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("failed to generate after %d attempts: %w", c.maxRetries+1, lastErr)
}

// waitTurn enforces the minimum interval between consecutive generation
// calls, sleeping the difference when called too soon.
func (c *Client) waitTurn() {
	if c.minCallGap <= 0 {
		return
	}
	c.throttleMu.Lock()
	defer c.throttleMu.Unlock()

	if since := c.now().Sub(c.lastCall); since < c.minCallGap {
		c.sleep(c.minCallGap - since)
	}
	c.lastCall = c.now()
}
