// ABOUTME: Vector index abstraction over interchangeable storage backends
// ABOUTME: Scores are L2 distances, smaller means more similar
package index

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// ErrNoPersisted signals that a backend has no persisted index to load.
// Callers fall through to the create path rather than treating it as failure.
var ErrNoPersisted = errors.New("no persisted index")

// Index is an opaque store mapping chunks to embedding vectors, answering
// top-k nearest-neighbor queries by semantic similarity.
type Index interface {
	// SimilaritySearchWithScores returns the k closest chunks with their
	// distance scores, closest first.
	SimilaritySearchWithScores(ctx context.Context, vector []float32, k int) ([]models.ScoredChunk, error)

	// SimilaritySearch returns the k closest chunks without scores.
	SimilaritySearch(ctx context.Context, vector []float32, k int) ([]models.Chunk, error)

	// Close releases backend resources.
	Close() error
}

// Backend is one interchangeable index storage strategy.
type Backend interface {
	Name() string

	// Load opens an index from the backend's persisted state. Returns
	// ErrNoPersisted when nothing has been stored yet.
	Load(ctx context.Context) (Index, error)

	// Create builds a fresh index from chunks and their vectors and
	// persists it.
	Create(ctx context.Context, chunks []models.Chunk, vectors [][]float32) (Index, error)
}

// l2Distance computes the Euclidean distance between two vectors. OpenAI
// embeddings are unit-length, so distances fall in [0, 2].
func l2Distance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.MaxFloat64
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// rankByDistance returns the k nearest entries from scored candidates,
// closest first. Stable so equal distances keep insertion order.
func rankByDistance(candidates []models.ScoredChunk, k int) []models.ScoredChunk {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
