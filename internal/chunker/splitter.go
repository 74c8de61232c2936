// ABOUTME: Splitter divides long text into bounded, overlapping chunks for embedding
// ABOUTME: Tries coarse separators first (paragraph, line, sentence, word) and recurses on oversized pieces
package chunker

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// separators ordered from coarsest to finest granularity
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter holds the chunking size parameters
type Splitter struct {
	ChunkSize    int // maximum chunk length in characters
	ChunkOverlap int // characters carried over between adjacent chunks
	MinChars     int // pieces shorter than this are dropped as noise
}

// NewSplitter creates a Splitter with the given size parameters
func NewSplitter(chunkSize, chunkOverlap, minChars int) *Splitter {
	return &Splitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		MinChars:     minChars,
	}
}

// Split chunks text into pieces of at most ChunkSize characters, tagging each
// chunk with the given source. Splitting is boundary-aware: pieces end at the
// coarsest separator that keeps them under the limit, so lengths are
// approximate rather than exact. Pieces below MinChars are discarded.
func (s *Splitter) Split(text, source string) []models.Chunk {
	var chunks []models.Chunk
	for _, piece := range s.splitText(text, separators) {
		piece = strings.TrimSpace(piece)
		if len(piece) < s.MinChars {
			continue // skip very small fragments
		}
		chunks = append(chunks, models.Chunk{
			ChunkID:  generateChunkID(),
			Document: models.NewDocument(piece, map[string]string{models.MetaSource: source}),
		})
	}
	return chunks
}

// SplitDocument chunks a document's content, carrying its metadata onto every
// chunk.
func (s *Splitter) SplitDocument(doc models.Document, source string) []models.Chunk {
	chunks := s.Split(doc.Content, source)
	for i := range chunks {
		for k, v := range doc.Metadata {
			if v != "" {
				chunks[i].Metadata[k] = v
			}
		}
	}
	return chunks
}

// splitText recursively subdivides text using the separator hierarchy until
// every piece fits within ChunkSize.
func (s *Splitter) splitText(text string, seps []string) []string {
	if len(text) <= s.ChunkSize {
		return []string{text}
	}
	if len(seps) == 0 {
		return s.hardSplit(text)
	}

	sep := seps[0]
	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		// Separator absent at this granularity, try the next one
		return s.splitText(text, seps[1:])
	}

	var pieces []string
	for _, part := range parts {
		if len(part) > s.ChunkSize {
			pieces = append(pieces, s.splitText(part, seps[1:])...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return s.merge(pieces, sep)
}

// merge greedily joins small pieces back together up to ChunkSize, carrying
// ChunkOverlap characters from the end of each chunk into the next so context
// at boundaries is not lost.
func (s *Splitter) merge(pieces []string, sep string) []string {
	var merged []string
	var current strings.Builder

	flush := func() string {
		out := current.String()
		if out != "" {
			merged = append(merged, out)
		}
		current.Reset()
		return out
	}

	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		needed := len(piece)
		if current.Len() > 0 {
			needed += len(sep)
		}
		if current.Len()+needed > s.ChunkSize && current.Len() > 0 {
			prev := flush()
			if s.ChunkOverlap > 0 && len(prev) > s.ChunkOverlap {
				current.WriteString(prev[len(prev)-s.ChunkOverlap:])
			}
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(piece)
	}
	flush()
	return merged
}

// hardSplit cuts text at fixed offsets when no separator granularity fits.
func (s *Splitter) hardSplit(text string) []string {
	var out []string
	step := s.ChunkSize - s.ChunkOverlap
	if step <= 0 {
		step = s.ChunkSize
	}
	for start := 0; start < len(text); start += step {
		end := start + s.ChunkSize
		if end > len(text) {
			end = len(text)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}
	}
	return out
}

// generateChunkID generates a unique chunk ID
func generateChunkID() string {
	return "chunk_" + uuid.New().String()
}
