// ABOUTME: Tests for boundary-aware text chunking
// ABOUTME: Verifies size bounds, overlap carry-over, and small-fragment filtering
package chunker

import (
	"strings"
	"testing"

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(1500, 50, 10)

	chunks := s.Split("A short underwriting note about a cafe risk.", "chat")

	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].Content != "A short underwriting note about a cafe risk." {
		t.Errorf("content = %q", chunks[0].Content)
	}
	if chunks[0].Metadata[models.MetaSource] != "chat" {
		t.Errorf("source = %q, want chat", chunks[0].Metadata[models.MetaSource])
	}
}

func TestSplit_RespectsChunkSize(t *testing.T) {
	s := NewSplitter(100, 10, 5)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("This is sentence number one about liability cover. ")
	}

	chunks := s.Split(b.String(), "policy.pdf")

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c.Content) > 100+10 {
			t.Errorf("chunk %d length %d exceeds size plus overlap", i, len(c.Content))
		}
	}
}

func TestSplit_DropsSmallFragments(t *testing.T) {
	s := NewSplitter(50, 0, 20)

	chunks := s.Split("tiny\n\nA fragment long enough to stay in the output set.", "chat")

	for _, c := range chunks {
		if len(c.Content) < 20 {
			t.Errorf("fragment %q shorter than min chars survived", c.Content)
		}
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	s := NewSplitter(60, 0, 5)

	text := "First paragraph about property cover and excess levels.\n\nSecond paragraph about claims history and referrals."
	chunks := s.Split(text, "chat")

	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}
	if !strings.HasPrefix(chunks[0].Content, "First paragraph") {
		t.Errorf("chunk 0 = %q", chunks[0].Content)
	}
	if !strings.HasPrefix(chunks[1].Content, "Second paragraph") {
		t.Errorf("chunk 1 = %q", chunks[1].Content)
	}
}

func TestSplit_OverlapCarriesContext(t *testing.T) {
	s := NewSplitter(50, 15, 5)

	text := strings.Repeat("alpha beta gamma delta epsilon zeta ", 10)
	chunks := s.Split(text, "chat")

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// The head of each later chunk repeats the tail of its predecessor.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Content
		tail := prev[len(prev)-10:]
		if !strings.Contains(chunks[i].Content, strings.TrimSpace(tail)) {
			t.Errorf("chunk %d does not carry tail of chunk %d", i, i-1)
		}
	}
}

func TestSplit_HardSplitWithoutSeparators(t *testing.T) {
	s := NewSplitter(40, 10, 5)

	text := strings.Repeat("x", 130)
	chunks := s.Split(text, "chat")

	if len(chunks) < 3 {
		t.Fatalf("len(chunks) = %d, want at least 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c.Content) > 40 {
			t.Errorf("chunk %d length = %d, want <= 40", i, len(c.Content))
		}
	}
}

func TestSplit_UniqueChunkIDs(t *testing.T) {
	s := NewSplitter(50, 0, 5)

	chunks := s.Split(strings.Repeat("some repeated words here. ", 20), "chat")

	seen := make(map[string]bool)
	for _, c := range chunks {
		if !strings.HasPrefix(c.ChunkID, "chunk_") {
			t.Errorf("chunk ID %q missing prefix", c.ChunkID)
		}
		if seen[c.ChunkID] {
			t.Errorf("duplicate chunk ID %q", c.ChunkID)
		}
		seen[c.ChunkID] = true
	}
}

func TestSplitDocument_CarriesMetadata(t *testing.T) {
	s := NewSplitter(1500, 50, 5)

	doc := models.NewDocument("Broker discussed a warehouse risk with sprinklers.", map[string]string{
		models.MetaExperience: "good",
		models.MetaOutcome:    "bound",
	})

	chunks := s.SplitDocument(doc, "chat")

	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].Metadata[models.MetaExperience] != "good" {
		t.Errorf("experience = %q", chunks[0].Metadata[models.MetaExperience])
	}
	if chunks[0].Metadata[models.MetaSource] != "chat" {
		t.Errorf("source = %q", chunks[0].Metadata[models.MetaSource])
	}
}
