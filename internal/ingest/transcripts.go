// ABOUTME: Loads historical broker chat transcripts from a tabular CSV export
// ABOUTME: Strips markup and re-renders timestamped dialogue lines as "speaker: message"
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// Column names expected in the transcript export
const (
	colTranscript   = "TRANSCRIPT"
	colExperience   = "EXPERIENCE"
	colInitialGroup = "INITIAL ROUTING GROUP"
	colFinalGroup   = "FINAL ROUTING GROUP"
	colOutcome      = "OUTCOME"
)

var (
	markupRe   = regexp.MustCompile(`<[^>]*>`)
	dialogueRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2} - (.*?) - (.*)$`)
)

// LoadChatTranscripts parses the chat export at path into one Document per
// transcript row. Rows with a missing or empty transcript are skipped, not
// treated as errors.
func LoadChatTranscripts(path string) ([]models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chat data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading chat data header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	if _, ok := cols[colTranscript]; !ok {
		return nil, fmt.Errorf("chat data %s has no %s column", path, colTranscript)
	}

	var docs []models.Document
	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading chat data row: %w", err)
		}
		rows++

		transcript := field(record, cols, colTranscript)
		if strings.TrimSpace(transcript) == "" {
			continue
		}

		text := renderTranscript(transcript)
		if text == "" {
			continue
		}

		docs = append(docs, models.NewDocument(text, map[string]string{
			models.MetaSource:       "chat",
			models.MetaExperience:   field(record, cols, colExperience),
			models.MetaInitialGroup: field(record, cols, colInitialGroup),
			models.MetaFinalGroup:   field(record, cols, colFinalGroup),
			models.MetaOutcome:      field(record, cols, colOutcome),
		}))
	}

	log.Printf("loaded %d chat documents from %d rows in %s", len(docs), rows, path)
	return docs, nil
}

// renderTranscript strips markup and keeps only timestamped dialogue lines,
// re-rendered as "speaker: message". Non-matching lines are dropped.
func renderTranscript(transcript string) string {
	clean := markupRe.ReplaceAllString(transcript, "")
	var messages []string
	for _, line := range strings.Split(strings.TrimSpace(clean), "\n") {
		m := dialogueRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		sender, message := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if sender == "" {
			continue
		}
		messages = append(messages, sender+": "+message)
	}
	return strings.Join(messages, "\n")
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
