// ABOUTME: Document and Chunk types for the underwriting knowledge base
// ABOUTME: A Chunk is a bounded-length Document fragment, the unit of embedding and retrieval
package models

// Metadata keys attached to chat-derived documents. Only non-empty
// values are stored.
const (
	MetaSource       = "source"
	MetaExperience   = "experience"
	MetaInitialGroup = "initial_group"
	MetaFinalGroup   = "final_group"
	MetaOutcome      = "outcome"
)

// Document is a normalized text record with metadata, immutable once created.
type Document struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewDocument creates a document, dropping empty metadata values.
func NewDocument(content string, metadata map[string]string) Document {
	kept := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if v != "" {
			kept[k] = v
		}
	}
	return Document{Content: content, Metadata: kept}
}

// Source returns the document's source label, if any.
func (d Document) Source() string {
	return d.Metadata[MetaSource]
}

// Chunk is a bounded-length segment of a source document.
type Chunk struct {
	ChunkID string `json:"chunk_id"`
	Document
}

// ScoredChunk pairs a retrieved chunk with its distance score
// (smaller = more similar).
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
