// ABOUTME: Charm KV index backend, one JSON record per indexed chunk
// ABOUTME: File-based local persistence with optional cloud sync
package index

import (
	"context"
	"fmt"

	"github.com/rajulshakya777/AgentVerse/internal/charm"
	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// vectorRecord is the stored form of an indexed chunk.
type vectorRecord struct {
	Chunk  models.Chunk `json:"chunk"`
	Vector []float32    `json:"vector"`
}

// KVBackend persists the index in a charm KV database.
type KVBackend struct {
	cfg *charm.Config
}

// NewKVBackend creates a backend writing to the named charm KV database.
func NewKVBackend(dbName string) *KVBackend {
	return &KVBackend{cfg: charm.DefaultConfig(dbName)}
}

// Name identifies this backend in logs.
func (b *KVBackend) Name() string { return "charm-kv" }

// Load opens the KV store and returns an index over its existing records.
// An empty store signals "must build from scratch".
func (b *KVBackend) Load(ctx context.Context) (Index, error) {
	client, err := charm.NewClient(b.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening kv store: %w", err)
	}

	keys, err := client.ListKeys(charm.VectorPrefix)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("listing kv keys: %w", err)
	}
	if len(keys) == 0 {
		client.Close()
		return nil, ErrNoPersisted
	}

	return &kvIndex{client: client, keys: keys}, nil
}

// Create writes one record per chunk and returns an index over them.
func (b *KVBackend) Create(ctx context.Context, chunks []models.Chunk, vectors [][]float32) (Index, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	client, err := charm.NewClient(b.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening kv store: %w", err)
	}

	keys := make([]string, len(chunks))
	for i, chunk := range chunks {
		key := charm.VectorPrefix + chunk.ChunkID
		rec := vectorRecord{Chunk: chunk, Vector: vectors[i]}
		if err := client.SetJSON(key, rec); err != nil {
			client.Close()
			return nil, fmt.Errorf("storing chunk %s: %w", chunk.ChunkID, err)
		}
		keys[i] = key
	}

	return &kvIndex{client: client, keys: keys}, nil
}

// kvIndex answers similarity queries by scanning all stored records.
type kvIndex struct {
	client *charm.Client
	keys   []string
}

func (s *kvIndex) SimilaritySearchWithScores(ctx context.Context, vector []float32, k int) ([]models.ScoredChunk, error) {
	var candidates []models.ScoredChunk
	for _, key := range s.keys {
		var rec vectorRecord
		if err := s.client.GetJSON(key, &rec); err != nil {
			continue // skip unreadable records
		}
		candidates = append(candidates, models.ScoredChunk{
			Chunk: rec.Chunk,
			Score: l2Distance(vector, rec.Vector),
		})
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("kv index has no readable records")
	}
	return rankByDistance(candidates, k), nil
}

func (s *kvIndex) SimilaritySearch(ctx context.Context, vector []float32, k int) ([]models.Chunk, error) {
	scored, err := s.SimilaritySearchWithScores(ctx, vector, k)
	if err != nil {
		return nil, err
	}
	chunks := make([]models.Chunk, len(scored))
	for i, s := range scored {
		chunks[i] = s.Chunk
	}
	return chunks, nil
}

func (s *kvIndex) Close() error {
	return s.client.Close()
}
