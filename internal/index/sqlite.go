// ABOUTME: SQLite-backed index backend with embedded-database persistence
// ABOUTME: Brute-force L2 scan over JSON-encoded vectors, fine at corpus scale
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS chunks (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	metadata TEXT NOT NULL,
	embedding BLOB NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteBackend persists the index in a sqlite file under dir.
type SQLiteBackend struct {
	dir string
}

// NewSQLiteBackend creates a backend storing its database under dir.
func NewSQLiteBackend(dir string) *SQLiteBackend {
	if dir == "" {
		dir = "vector_db"
	}
	return &SQLiteBackend{dir: dir}
}

// Name identifies this backend in logs.
func (b *SQLiteBackend) Name() string { return "sqlite" }

func (b *SQLiteBackend) dbPath() string {
	return filepath.Join(b.dir, "vectors.db")
}

// Load opens a previously persisted index. Absence of the database file
// signals "must build from scratch".
func (b *SQLiteBackend) Load(ctx context.Context) (Index, error) {
	if _, err := os.Stat(b.dbPath()); os.IsNotExist(err) {
		return nil, ErrNoPersisted
	}

	db, err := sql.Open("sqlite3", b.dbPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		db.Close()
		return nil, fmt.Errorf("reading persisted index: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, ErrNoPersisted
	}

	return &sqliteIndex{db: db}, nil
}

// Create builds and persists a fresh index from chunks and their vectors.
func (b *SQLiteBackend) Create(ctx context.Context, chunks []models.Chunk, vectors [][]float32) (Index, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", b.dbPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (id, content, metadata, embedding)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		metaJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("encoding metadata: %w", err)
		}
		vecJSON, err := json.Marshal(vectors[i])
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("encoding embedding: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, chunk.ChunkID, chunk.Content, metaJSON, vecJSON); err != nil {
			db.Close()
			return nil, fmt.Errorf("inserting chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		db.Close()
		return nil, fmt.Errorf("committing index: %w", err)
	}

	return &sqliteIndex{db: db}, nil
}

// sqliteIndex answers similarity queries against the chunks table.
type sqliteIndex struct {
	mu sync.RWMutex
	db *sql.DB
}

func (s *sqliteIndex) SimilaritySearchWithScores(ctx context.Context, vector []float32, k int) ([]models.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, content, metadata, embedding FROM chunks")
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var candidates []models.ScoredChunk
	for rows.Next() {
		var chunk models.Chunk
		var metaJSON, vecJSON []byte
		if err := rows.Scan(&chunk.ChunkID, &chunk.Content, &metaJSON, &vecJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal(metaJSON, &chunk.Metadata); err != nil {
			continue // skip corrupted metadata
		}
		var vec []float32
		if err := json.Unmarshal(vecJSON, &vec); err != nil {
			continue // skip corrupted embeddings
		}
		candidates = append(candidates, models.ScoredChunk{
			Chunk: chunk,
			Score: l2Distance(vector, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return rankByDistance(candidates, k), nil
}

func (s *sqliteIndex) SimilaritySearch(ctx context.Context, vector []float32, k int) ([]models.Chunk, error) {
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

func (s *sqliteIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
