// ABOUTME: Canned reply templates for the short-circuit response paths
// ABOUTME: Random greeting choice uses an injectable source so tests stay deterministic
package router

import (
	"fmt"
	"math/rand"
	"time"
)

// Templates renders the canned replies for short-circuit paths.
type Templates struct {
	AgentName string
	rng       *rand.Rand
}

// NewTemplates creates a template set for the named agent persona. A nil rng
// falls back to a time-seeded source.
func NewTemplates(agentName string, rng *rand.Rand) *Templates {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Templates{AgentName: agentName, rng: rng}
}

// Identity is the fixed self-identification reply.
func (t *Templates) Identity() string {
	return fmt.Sprintf("Answer: I'm %s, an AI underwriting assistant for small business insurance. "+
		"I can help with coverage questions, risk appetite, discounts, and referrals, "+
		"drawing on past broker conversations and policy documents.", t.AgentName)
}

// Empathy is the non-decision reply to emotional first-person messages.
func (t *Templates) Empathy() string {
	return "Answer: I'm sorry to hear that. I hope things look up soon. " +
		"Whenever you're ready, I'm here to help with any underwriting or policy questions."
}

var greetings = []string{
	"Answer: Hello! How can I help with your underwriting questions today?",
	"Answer: Hi there! Ask me anything about coverage, discounts, or risk appetite.",
	"Answer: Hey! Happy to help with policy or underwriting queries.",
	"Answer: Hello! What risk are we looking at today?",
}

// Greeting picks one of the friendly small-talk replies.
func (t *Templates) Greeting() string {
	return greetings[t.rng.Intn(len(greetings))]
}

// GreetingCount reports how many greeting variants exist.
func GreetingCount() int { return len(greetings) }

// IsGreeting reports whether reply is one of the greeting templates.
func IsGreeting(reply string) bool {
	for _, g := range greetings {
		if reply == g {
			return true
		}
	}
	return false
}

// General is the reply for out-of-scope or too-vague questions where
// retrieved context is too weak to ground an answer.
func (t *Templates) General() string {
	return "Answer: I can help best with small business underwriting: coverage questions, " +
		"risk appetite, discounts, and referrals. Could you share a few details about " +
		"the risk you have in mind, such as the trade, sums insured, and claims history?"
}

// GeneralWithError is the fallback when the model could not be reached.
func (t *Templates) GeneralWithError(err error) string {
	return t.General() + fmt.Sprintf("\n\n(Note: there was an error reaching the model: %v)", err)
}
