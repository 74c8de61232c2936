// ABOUTME: CLI command to search the knowledge base directly
// ABOUTME: Runs top-k retrieval without generation for inspection and tuning
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	"github.com/rajulshakya777/AgentVerse/internal/agent"
	"github.com/rajulshakya777/AgentVerse/internal/config"
	"github.com/rajulshakya777/AgentVerse/internal/models"
)

var (
	searchLimit int
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Search chat transcripts and policy documents by semantic similarity.

Prints the top matching excerpts with their distance scores, without
running generation. Useful for inspecting what the assistant would
ground an answer on.

Examples:
  underwriter search "liability for scaffolding work"
  underwriter search --limit 10 "flood excess"
  underwriter search --format json "claims history"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 4, "Maximum results to return")

	return cmd
}

type searchHit struct {
	ChunkID string            `json:"chunk_id"`
	Content string            `json:"content"`
	Source  string            `json:"source"`
	Meta    map[string]string `json:"metadata,omitempty"`
	Score   *float64          `json:"score,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ag, err := agent.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing assistant: %w", err)
	}

	res, err := ag.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("searching knowledge base: %w", err)
	}

	if len(res.Chunks) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No matches found for query: %s\n", args[0])
		}
		return nil
	}

	hits := make([]searchHit, len(res.Chunks))
	for i, chunk := range res.Chunks {
		hits[i] = searchHit{
			ChunkID: chunk.ChunkID,
			Content: chunk.Content,
			Source:  chunk.Metadata[models.MetaSource],
			Meta:    chunk.Metadata,
		}
		if i < len(res.Scores) {
			score := res.Scores[i]
			hits[i].Score = &score
		}
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tSOURCE\tPREVIEW\n")
		fmt.Fprintf(w, "-----\t------\t-------\n")
		for _, hit := range hits {
			score := "-"
			if hit.Score != nil {
				score = fmt.Sprintf("%.3f", *hit.Score)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				score,
				truncate(hit.Source, 25),
				truncate(oneLine(hit.Content), 70))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(hits))
			if res.Weak {
				fmt.Fprintln(cmd.OutOrStdout(), "Note: matches are weak; answers would fall back to a general reply for vague queries")
			}
		}
	}

	return nil
}
