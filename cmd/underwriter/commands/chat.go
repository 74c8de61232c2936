// ABOUTME: Interactive chat REPL for broker sessions
// ABOUTME: Keeps per-session history so follow-up questions carry context
package commands

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	"github.com/rajulshakya777/AgentVerse/internal/agent"
	"github.com/rajulshakya777/AgentVerse/internal/config"
	"github.com/rajulshakya777/AgentVerse/internal/models"
)

// NewChatCmd creates chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive underwriting session",
		Long: `Start an interactive underwriting session.

Each reply can reference earlier turns in the session, so follow-up
questions like "what about with a higher excess?" resolve against the
conversation so far. Type 'exit' or 'quit' (or press Ctrl-D) to leave.`,
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintf(cmd.OutOrStdout(), "%s here. Ask me about risks, policies, or past broker cases.\n", cfg.AgentName)
		fmt.Fprintln(cmd.OutOrStdout(), "Type 'exit' to leave.")
	}

	var history []models.Turn
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "\nbroker> ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		reply, err := ag.Respond(cmd.Context(), query, history)
		if err != nil {
			return fmt.Errorf("answering question: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", reply)

		now := time.Now()
		history = append(history,
			models.Turn{Role: models.RoleBroker, Message: query, Timestamp: now},
			models.Turn{Role: models.RoleAgent, Message: reply, Timestamp: now},
		)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "\nGoodbye.")
	}
	return nil
}
