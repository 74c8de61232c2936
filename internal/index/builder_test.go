// ABOUTME: Tests for the build-once index lifecycle and backend fallback
// ABOUTME: Fake backends and embedder verify call counts and ordering
package index

import (
	"context"
	"errors"
	"testing"

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

type countingEmbedder struct {
	calls int
	dim   int
}

func (e *countingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = make([]float32, e.dim)
	}
	return vectors, nil
}

type stubIndex struct{ name string }

func (s *stubIndex) SimilaritySearchWithScores(ctx context.Context, vector []float32, k int) ([]models.ScoredChunk, error) {
	return nil, nil
}
func (s *stubIndex) SimilaritySearch(ctx context.Context, vector []float32, k int) ([]models.Chunk, error) {
	return nil, nil
}
func (s *stubIndex) Close() error { return nil }

type fakeBackend struct {
	name        string
	loadIdx     Index
	loadErr     error
	createIdx   Index
	createErr   error
	loadCalls   int
	createCalls int
	// captured from the last Create call
	gotChunks []models.Chunk
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Load(ctx context.Context) (Index, error) {
	f.loadCalls++
	return f.loadIdx, f.loadErr
}

func (f *fakeBackend) Create(ctx context.Context, chunks []models.Chunk, vectors [][]float32) (Index, error) {
	f.createCalls++
	f.gotChunks = chunks
	return f.createIdx, f.createErr
}

func testChunks(ids ...string) []models.Chunk {
	chunks := make([]models.Chunk, len(ids))
	for i, id := range ids {
		chunks[i] = models.Chunk{ChunkID: id, Document: models.NewDocument("content "+id, nil)}
	}
	return chunks
}

func TestBuildOrLoad_LoadSkipsEmbedding(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	be := &fakeBackend{name: "sqlite", loadIdx: &stubIndex{name: "persisted"}}
	b := NewBuilder(emb, be)

	idx, err := b.BuildOrLoad(context.Background(), testChunks("a"), testChunks("b"))
	if err != nil {
		t.Fatalf("BuildOrLoad: %v", err)
	}

	if idx != be.loadIdx {
		t.Error("should return the loaded index")
	}
	if emb.calls != 0 {
		t.Errorf("load path made %d embedding calls, want 0", emb.calls)
	}
	if be.createCalls != 0 {
		t.Errorf("load path called Create %d times, want 0", be.createCalls)
	}
}

func TestBuildOrLoad_CreatesWhenNothingPersisted(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	be := &fakeBackend{name: "sqlite", loadErr: ErrNoPersisted, createIdx: &stubIndex{}}
	b := NewBuilder(emb, be)

	idx, err := b.BuildOrLoad(context.Background(), testChunks("a", "b"), testChunks("c"))
	if err != nil {
		t.Fatalf("BuildOrLoad: %v", err)
	}

	if idx != be.createIdx {
		t.Error("should return the created index")
	}
	if emb.calls != 1 {
		t.Errorf("embedding calls = %d, want exactly 1", emb.calls)
	}
	// Chat chunks come before policy chunks in the merged set.
	want := []string{"a", "b", "c"}
	if len(be.gotChunks) != len(want) {
		t.Fatalf("created with %d chunks, want %d", len(be.gotChunks), len(want))
	}
	for i, id := range want {
		if be.gotChunks[i].ChunkID != id {
			t.Errorf("chunk[%d] = %q, want %q", i, be.gotChunks[i].ChunkID, id)
		}
	}
}

func TestBuildOrLoad_SecondCallReturnsCache(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	be := &fakeBackend{name: "sqlite", loadErr: ErrNoPersisted, createIdx: &stubIndex{}}
	b := NewBuilder(emb, be)

	first, err := b.BuildOrLoad(context.Background(), testChunks("a"), nil)
	if err != nil {
		t.Fatalf("first BuildOrLoad: %v", err)
	}
	second, err := b.BuildOrLoad(context.Background(), testChunks("a"), nil)
	if err != nil {
		t.Fatalf("second BuildOrLoad: %v", err)
	}

	if first != second {
		t.Error("second call should return the same cached index")
	}
	if emb.calls != 1 {
		t.Errorf("embedding calls = %d, want 1 across both calls", emb.calls)
	}
	if be.loadCalls != 1 || be.createCalls != 1 {
		t.Errorf("backend touched again on cached call: load=%d create=%d", be.loadCalls, be.createCalls)
	}
}

func TestBuildOrLoad_FallsBackToNextBackend(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	broken := &fakeBackend{name: "sqlite", loadErr: ErrNoPersisted, createErr: errors.New("disk full")}
	healthy := &fakeBackend{name: "charm-kv", loadErr: ErrNoPersisted, createIdx: &stubIndex{}}
	b := NewBuilder(emb, broken, healthy)

	idx, err := b.BuildOrLoad(context.Background(), testChunks("a"), nil)
	if err != nil {
		t.Fatalf("BuildOrLoad: %v", err)
	}

	if idx != healthy.createIdx {
		t.Error("should fall through to the healthy backend")
	}
	if broken.createCalls != 1 || healthy.createCalls != 1 {
		t.Errorf("create calls: broken=%d healthy=%d", broken.createCalls, healthy.createCalls)
	}
}

func TestBuildOrLoad_PreferredBackendWinsLoad(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	preferred := &fakeBackend{name: "charm-kv", loadIdx: &stubIndex{name: "kv"}}
	other := &fakeBackend{name: "sqlite", loadIdx: &stubIndex{name: "sqlite"}}
	b := NewBuilder(emb, preferred, other)

	idx, err := b.BuildOrLoad(context.Background(), testChunks("a"), nil)
	if err != nil {
		t.Fatalf("BuildOrLoad: %v", err)
	}

	if idx != preferred.loadIdx {
		t.Error("first backend in order should win")
	}
	if other.loadCalls != 0 {
		t.Errorf("later backend loaded %d times, want 0", other.loadCalls)
	}
}

func TestBuildOrLoad_AllBackendsFailing(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	a := &fakeBackend{name: "sqlite", loadErr: ErrNoPersisted, createErr: errors.New("a failed")}
	c := &fakeBackend{name: "charm-kv", loadErr: ErrNoPersisted, createErr: errors.New("c failed")}
	b := NewBuilder(emb, a, c)

	_, err := b.BuildOrLoad(context.Background(), testChunks("x"), nil)
	if err == nil {
		t.Fatal("expected error when every backend fails")
	}
	if b.Cached() != nil {
		t.Error("failed build should not populate the cache")
	}
}

func TestBuildOrLoad_NoChunks(t *testing.T) {
	b := NewBuilder(&countingEmbedder{dim: 4}, &fakeBackend{name: "sqlite", loadErr: ErrNoPersisted})

	if _, err := b.BuildOrLoad(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for empty corpus")
	}
}

func TestCached_NilBeforeBuild(t *testing.T) {
	b := NewBuilder(&countingEmbedder{dim: 4})
	if b.Cached() != nil {
		t.Error("cache should start empty")
	}
}
