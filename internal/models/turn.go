// ABOUTME: Turn represents one message in a broker/agent conversation
// ABOUTME: History is an ordered, append-only sequence owned by the calling session
package models

import "time"

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleBroker Role = "Broker"
	RoleAgent  Role = "Agent"
)

// Turn is a single conversation message.
type Turn struct {
	Role      Role      `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// RecentTurns returns a read-only suffix of history: the messages belonging to
// the most recent max exchanges (one exchange = up to two messages). The
// pipeline never mutates the history it is handed.
func RecentTurns(history []Turn, maxExchanges int) []Turn {
	if maxExchanges <= 0 {
		return nil
	}
	limit := maxExchanges * 2
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
