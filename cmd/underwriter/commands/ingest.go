// ABOUTME: CLI command to build the vector index from corpus files
// ABOUTME: Ingests chat transcripts and policy documents ahead of first query
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	"github.com/rajulshakya777/AgentVerse/internal/agent"
	"github.com/rajulshakya777/AgentVerse/internal/config"
)

// NewIngestCmd creates ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Build the knowledge base index",
		Long: `Build the knowledge base index from the configured corpus.

Reads chat transcripts (CHAT_DATA_PATH) and policy documents
(POLICY_DOCS_PATH), chunks and embeds them, and persists the index so
later queries start instantly. If a persisted index already exists it is
loaded instead and no embedding calls are made.

Examples:
  underwriter ingest
  CHAT_DATA_PATH=exports/chats.csv underwriter ingest`,
		Args: cobra.NoArgs,
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ag, err := agent.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing assistant: %w", err)
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "Building knowledge base index...")
	}

	if _, err := ag.EnsureIndex(cmd.Context()); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "Index ready")
	}
	return nil
}
