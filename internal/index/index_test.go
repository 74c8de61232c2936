// ABOUTME: Tests for distance math and candidate ranking
// ABOUTME: Covers mismatched vectors and stable tie ordering
package index

import (
	"math"
	"testing"

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

func TestL2Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 0},
		{"orthogonal unit", []float32{1, 0}, []float32{0, 1}, math.Sqrt2},
		{"opposite unit", []float32{1, 0}, []float32{-1, 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l2Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("l2Distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestL2Distance_MismatchedLengths(t *testing.T) {
	if got := l2Distance([]float32{1, 0}, []float32{1}); got != math.MaxFloat64 {
		t.Errorf("mismatched vectors should be maximally distant, got %v", got)
	}
	if got := l2Distance(nil, nil); got != math.MaxFloat64 {
		t.Errorf("empty vectors should be maximally distant, got %v", got)
	}
}

func TestRankByDistance(t *testing.T) {
	candidates := []models.ScoredChunk{
		{Chunk: models.Chunk{ChunkID: "far"}, Score: 1.8},
		{Chunk: models.Chunk{ChunkID: "near"}, Score: 0.2},
		{Chunk: models.Chunk{ChunkID: "mid"}, Score: 0.9},
	}

	got := rankByDistance(candidates, 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Chunk.ChunkID != "near" || got[1].Chunk.ChunkID != "mid" {
		t.Errorf("order = %q, %q; want near, mid", got[0].Chunk.ChunkID, got[1].Chunk.ChunkID)
	}
}

func TestRankByDistance_StableOnTies(t *testing.T) {
	candidates := []models.ScoredChunk{
		{Chunk: models.Chunk{ChunkID: "first"}, Score: 0.5},
		{Chunk: models.Chunk{ChunkID: "second"}, Score: 0.5},
	}

	got := rankByDistance(candidates, 2)

	if got[0].Chunk.ChunkID != "first" {
		t.Errorf("equal scores should keep insertion order, got %q first", got[0].Chunk.ChunkID)
	}
}

func TestRankByDistance_KLargerThanCandidates(t *testing.T) {
	candidates := []models.ScoredChunk{
		{Chunk: models.Chunk{ChunkID: "only"}, Score: 0.1},
	}

	if got := rankByDistance(candidates, 10); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}
