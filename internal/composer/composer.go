// ABOUTME: Assembles the generation prompt from history, context, and question
// ABOUTME: Normalizes model output so Answer/Decision/Explanation always render cleanly
package composer

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/rajulshakya777/AgentVerse/internal/models"
	"github.com/rajulshakya777/AgentVerse/internal/router"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// noContextMarker stands in for the context block when retrieval found
// nothing worth citing.
const noContextMarker = "(no strong matches)"

const promptTemplate = `You are %s, an AI underwriting assistant for small business insurance.

Recent conversation with the broker (most recent first):
%s

You have access to the following context from previous broker chats and policy documents:
%s

Given this information and the broker's question:
%s

Please provide:
1) A clear, concise answer to the question.
2) A recommended underwriting decision: Accept, Decline, Refer, or Discount.
3) A short explanation for your decision.

Format your response as:

Answer:
Decision:
Explanation:
`

// Composer builds prompts, invokes generation, and normalizes the output.
type Composer struct {
	gen             Generator
	templates       *router.Templates
	agentName       string
	maxHistoryTurns int
}

// New creates a Composer.
func New(gen Generator, templates *router.Templates, agentName string, maxHistoryTurns int) *Composer {
	return &Composer{
		gen:             gen,
		templates:       templates,
		agentName:       agentName,
		maxHistoryTurns: maxHistoryTurns,
	}
}

// Compose builds the prompt, generates a reply, and post-processes it. A
// generation failure never propagates: the caller gets the general template
// annotated with the error instead.
func (c *Composer) Compose(ctx context.Context, query string, history []models.Turn, contextChunks []models.Chunk) string {
	prompt := c.BuildPrompt(query, history, contextChunks)

	reply, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		log.Printf("warning: generation failed, using templated fallback: %v", err)
		return c.templates.GeneralWithError(err)
	}
	return PostProcess(reply)
}

// BuildPrompt formats the instructional template with history, retrieved
// context, and the question.
func (c *Composer) BuildPrompt(query string, history []models.Turn, contextChunks []models.Chunk) string {
	return fmt.Sprintf(promptTemplate,
		c.agentName,
		c.historyBlock(history),
		contextBlock(contextChunks),
		query,
	)
}

// historyBlock renders the most recent exchanges, most recent first, with
// speaker labels normalized to Broker/Agent.
func (c *Composer) historyBlock(history []models.Turn) string {
	recent := models.RecentTurns(history, c.maxHistoryTurns)
	if len(recent) == 0 {
		return "(no prior conversation)"
	}
	lines := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		turn := recent[i]
		role := turn.Role
		if role != models.RoleBroker && role != models.RoleAgent {
			role = models.RoleBroker
		}
		lines = append(lines, string(role)+": "+turn.Message)
	}
	return strings.Join(lines, "\n")
}

// contextBlock concatenates retrieved chunk contents with blank-line
// separation.
func contextBlock(chunks []models.Chunk) string {
	if len(chunks) == 0 {
		return noContextMarker
	}
	parts := make([]string, len(chunks))
	for i, ch := range chunks {
		parts[i] = ch.Content
	}
	return strings.Join(parts, "\n\n")
}

var (
	midlineLabelRe = regexp.MustCompile(`([^\n])[ \t]*((?:Decision|Explanation):)`)
	afterLabelRe   = regexp.MustCompile(`((?:Answer|Decision|Explanation):)[ \t]+`)
)

// PostProcess normalizes generated text: every reply carries an Answer label,
// Decision/Explanation each start their own line with single-space padding
// after the label, and a missing decision gets the default clarification
// block appended.
func PostProcess(text string) string {
	out := strings.TrimSpace(text)

	if !strings.Contains(out, "Answer:") {
		out = "Answer: " + out
	}

	// Labels appearing mid-line move to a fresh line
	out = midlineLabelRe.ReplaceAllString(out, "$1\n$2")
	// Collapse redundant whitespace immediately after each label
	out = afterLabelRe.ReplaceAllString(out, "$1 ")

	if !strings.Contains(out, "Decision:") {
		out += "\n\nDecision: " + string(models.DecisionClarify) +
			"\nExplanation: Please share more detail about the risk (trade, sums insured, claims history) so I can give a firm recommendation."
	}
	return out
}
