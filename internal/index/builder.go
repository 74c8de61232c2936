// ABOUTME: Builder loads or constructs the vector index exactly once per process
// ABOUTME: Walks an ordered list of candidate backends, falling back on failure
package index

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// Embedder maps texts to embedding vectors.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Builder caches the index for the process lifetime. The first successful
// build or load wins; later calls return the same instance without
// re-embedding or re-reading disk.
type Builder struct {
	mu       sync.Mutex
	cached   Index
	embedder Embedder
	backends []Backend
}

// NewBuilder creates a Builder over an ordered list of candidate backends.
// The first backend is the preferred one.
func NewBuilder(embedder Embedder, backends ...Backend) *Builder {
	return &Builder{embedder: embedder, backends: backends}
}

// BuildOrLoad returns the cached index, loads a persisted one, or builds a
// fresh index from the merged chat and policy chunks. Per-backend failures
// are logged and the next candidate is tried; the error returns only when
// every backend has failed.
func (b *Builder) BuildOrLoad(ctx context.Context, chatChunks, policyChunks []models.Chunk) (Index, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cached != nil {
		return b.cached, nil
	}

	var failures []error

	// Load path: a persisted index skips embedding entirely.
	for _, be := range b.backends {
		idx, err := be.Load(ctx)
		if err == nil {
			log.Printf("loaded vector index from %s backend", be.Name())
			b.cached = idx
			return idx, nil
		}
		if errors.Is(err, ErrNoPersisted) {
			continue
		}
		log.Printf("warning: %s backend failed to load, trying next: %v", be.Name(), err)
		failures = append(failures, fmt.Errorf("%s load: %w", be.Name(), err))
	}

	// Create path: embed the merged document set once, then hand the same
	// vectors to each candidate backend.
	all := make([]models.Chunk, 0, len(chatChunks)+len(policyChunks))
	all = append(all, chatChunks...)
	all = append(all, policyChunks...)
	if len(all) == 0 {
		return nil, fmt.Errorf("no chunks to index")
	}

	texts := make([]string, len(all))
	for i, c := range all {
		texts[i] = c.Content
	}
	vectors, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunks: %w", len(all), err)
	}

	for _, be := range b.backends {
		idx, err := be.Create(ctx, all, vectors)
		if err == nil {
			log.Printf("built vector index with %d chunks on %s backend", len(all), be.Name())
			b.cached = idx
			return idx, nil
		}
		log.Printf("warning: %s backend failed to create, trying next: %v", be.Name(), err)
		failures = append(failures, fmt.Errorf("%s create: %w", be.Name(), err))
	}

	return nil, fmt.Errorf("all index backends failed: %w", errors.Join(failures...))
}

// Cached returns the in-memory index if one has been built or loaded.
func (b *Builder) Cached() Index {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cached
}
