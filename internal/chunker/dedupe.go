// ABOUTME: Dedupe removes near-duplicate chunks by normalized-content hash
// ABOUTME: Keeps the first occurrence in insertion order for reproducible output
package chunker

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalize collapses whitespace and lower-cases text so trivially different
// copies hash identically.
func normalize(text string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

// hashContent returns the dedup key for a chunk's content.
func hashContent(text string) string {
	sum := sha1.Sum([]byte(normalize(text)))
	return hex.EncodeToString(sum[:])
}

// Dedupe drops chunks whose normalized content was already seen, preserving
// the order of first occurrences. Within one batch no two retained chunks
// share a dedup key.
func Dedupe(chunks []models.Chunk) []models.Chunk {
	seen := make(map[string]struct{}, len(chunks))
	unique := make([]models.Chunk, 0, len(chunks))
	for _, c := range chunks {
		key := hashContent(c.Content)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
