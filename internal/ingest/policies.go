// ABOUTME: Walks a policy-document folder and extracts full text per recognized file
// ABOUTME: Unreadable or unrecognized files are skipped with a logged warning, never aborting ingestion
package ingest

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// LoadPolicyDocuments recursively walks dir and extracts one Document per
// recognized file. A file that fails extraction is skipped so a single
// corrupted PDF cannot abort the whole ingestion.
func LoadPolicyDocuments(dir string, extractor TextExtractor) ([]models.Document, error) {
	var docs []models.Document

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !extractor.Recognizes(path) {
			log.Printf("skipping unsupported file: %s", path)
			return nil
		}

		text, err := extractor.ExtractText(path)
		if err != nil {
			log.Printf("warning: extraction failed for %s, skipping: %v", path, err)
			return nil
		}

		docs = append(docs, models.NewDocument(tidyText(text), map[string]string{
			models.MetaSource: filepath.Base(path),
		}))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning policy folder %s: %w", dir, err)
	}

	log.Printf("loaded %d policy documents from %s", len(docs), dir)
	return docs, nil
}
