// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Entry point for all underwriter CLI operations
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗   ██╗███╗   ██╗██████╗ ███████╗██████╗ ██╗    ██╗██████╗ ██╗████████╗███████╗██████╗
██║   ██║████╗  ██║██╔══██╗██╔════╝██╔══██╗██║    ██║██╔══██╗██║╚══██╔══╝██╔════╝██╔══██╗
██║   ██║██╔██╗ ██║██║  ██║█████╗  ██████╔╝██║ █╗ ██║██████╔╝██║   ██║   █████╗  ██████╔╝
██║   ██║██║╚██╗██║██║  ██║██╔══╝  ██╔══██╗██║███╗██║██╔══██╗██║   ██║   ██╔══╝  ██╔══██╗
╚██████╔╝██║ ╚████║██████╔╝███████╗██║  ██║╚███╔███╔╝██║  ██║██║   ██║   ███████╗██║  ██║
 ╚═════╝ ╚═╝  ╚═══╝╚═════╝ ╚══════╝╚═╝  ╚═╝ ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "underwriter",
		Short: "Retrieval-augmented assistant for insurance underwriting queries",
		Long: banner + `
Underwriter answers broker questions using past broker-underwriter chat
transcripts and policy documents. Replies include a recommended decision
(Accept, Decline, Refer, Discount, or Need Clarification) grounded in the
retrieved context.

Run 'underwriter chat' for an interactive session, 'underwriter ask' for a
one-shot question, or 'underwriter mcp' to expose the assistant as an MCP
server for LLM agents.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
