// ABOUTME: Response is the structured Answer/Decision/Explanation reply shape
// ABOUTME: Short-circuit replies may omit the Decision and Explanation sections
package models

import "strings"

// Decision is the recommended underwriting action.
type Decision string

const (
	DecisionAccept   Decision = "Accept"
	DecisionDecline  Decision = "Decline"
	DecisionRefer    Decision = "Refer"
	DecisionDiscount Decision = "Discount"
	DecisionClarify  Decision = "Need Clarification"
)

// ValidDecisions lists the decisions a response may carry.
var ValidDecisions = []Decision{
	DecisionAccept,
	DecisionDecline,
	DecisionRefer,
	DecisionDiscount,
	DecisionClarify,
}

// IsValid reports whether d is one of the recognized decisions.
func (d Decision) IsValid() bool {
	for _, v := range ValidDecisions {
		if d == v {
			return true
		}
	}
	return false
}

// Response holds the three optional labeled sections of an agent reply.
type Response struct {
	Answer      string   `json:"answer,omitempty"`
	Decision    Decision `json:"decision,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// ParseResponse splits normalized reply text into its labeled sections.
// Text before the first label is treated as the answer.
func ParseResponse(text string) Response {
	var resp Response
	section := "Answer"
	var answer, explanation []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Answer:"):
			section = "Answer"
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "Answer:"))
			if trimmed != "" {
				answer = append(answer, trimmed)
			}
		case strings.HasPrefix(trimmed, "Decision:"):
			section = "Decision"
			resp.Decision = Decision(strings.TrimSpace(strings.TrimPrefix(trimmed, "Decision:")))
		case strings.HasPrefix(trimmed, "Explanation:"):
			section = "Explanation"
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "Explanation:"))
			if trimmed != "" {
				explanation = append(explanation, trimmed)
			}
		default:
			if trimmed == "" {
				continue
			}
			switch section {
			case "Explanation":
				explanation = append(explanation, trimmed)
			default:
				answer = append(answer, trimmed)
			}
		}
	}
	resp.Answer = strings.Join(answer, "\n")
	resp.Explanation = strings.Join(explanation, "\n")
	return resp
}

// String renders the response with its section labels, omitting empty ones.
func (r Response) String() string {
	var parts []string
	if r.Answer != "" {
		parts = append(parts, "Answer: "+r.Answer)
	}
	if r.Decision != "" {
		parts = append(parts, "Decision: "+string(r.Decision))
	}
	if r.Explanation != "" {
		parts = append(parts, "Explanation: "+r.Explanation)
	}
	return strings.Join(parts, "\n")
}
