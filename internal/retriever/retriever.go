// ABOUTME: Query-time retrieval of top-k chunks with a weak-context signal
// ABOUTME: Degrades from scored search to plain top-k when scoring is unavailable
package retriever

import (
	"context"
	"fmt"
	"log"

	"github.com/rajulshakya777/AgentVerse/internal/index"
	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// Embedder maps a query to its embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Result holds retrieved chunks and their distance scores. Scores is empty
// when the backend could only answer an unscored query.
type Result struct {
	Chunks []models.Chunk
	Scores []float64
	// Weak marks retrievals whose hits are too far from the query to
	// ground an answer: no hits at all, or mean distance above the
	// threshold. A heuristic, not a guarantee.
	Weak bool
}

// Retriever answers top-k similarity queries against the index.
type Retriever struct {
	embedder Embedder
	idx      index.Index
	// weakThreshold is the mean-distance cutoff; it depends on the
	// embedding model and is configurable rather than fixed.
	weakThreshold float64
}

// New creates a Retriever over an index.
func New(embedder Embedder, idx index.Index, weakThreshold float64) *Retriever {
	return &Retriever{embedder: embedder, idx: idx, weakThreshold: weakThreshold}
}

// Retrieve fetches the k most similar chunks for the query. The scored
// search is attempted first; if it errors, the plain search is used and
// Scores comes back empty.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (Result, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("embedding query: %w", err)
	}

	scored, err := r.idx.SimilaritySearchWithScores(ctx, vector, k)
	if err == nil {
		res := Result{
			Chunks: make([]models.Chunk, len(scored)),
			Scores: make([]float64, len(scored)),
		}
		for i, s := range scored {
			res.Chunks[i] = s.Chunk
			res.Scores[i] = s.Score
		}
		res.Weak = r.isWeak(res)
		return res, nil
	}

	log.Printf("warning: scored search failed, falling back to unscored retrieval: %v", err)
	chunks, err := r.idx.SimilaritySearch(ctx, vector, k)
	if err != nil {
		return Result{}, fmt.Errorf("similarity search: %w", err)
	}
	res := Result{Chunks: chunks}
	res.Weak = r.isWeak(res)
	return res, nil
}

func (r *Retriever) isWeak(res Result) bool {
	if len(res.Chunks) == 0 {
		return true
	}
	if len(res.Scores) == 0 {
		return false // unscored retrieval gives no signal to judge
	}
	var sum float64
	for _, s := range res.Scores {
		sum += s
	}
	return sum/float64(len(res.Scores)) > r.weakThreshold
}
