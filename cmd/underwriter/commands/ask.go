// ABOUTME: CLI command to ask a single underwriting question
// ABOUTME: Runs the full pipeline once and prints the structured reply
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	"github.com/rajulshakya777/AgentVerse/internal/agent"
	"github.com/rajulshakya777/AgentVerse/internal/config"
	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// NewAskCmd creates ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single underwriting question",
		Long: `Ask a single underwriting question and print the reply.

The reply references past broker chats and policy documents and carries a
recommended decision. Use 'underwriter chat' for a multi-turn session.

Examples:
  underwriter ask "Can we cover a roofing contractor with two recent claims?"
  underwriter ask --format json "What is the flood excess on commercial property?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	reply, err := ag.Respond(cmd.Context(), args[0], nil)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		resp := models.ParseResponse(reply)
		jsonData, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", reply)
	return nil
}
