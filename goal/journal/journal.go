// Package journal provides a durable audit trail of seek decisions: which
// node was checked, what phase it reached, and when. This is distinct from
// persisting plan state across invocations (an explicit non-goal of the
// goal package) — a journal only records what already happened, it is
// never read back to resume a seek.
package journal

import "context"

// Event is one recorded step of a seek evaluation.
type Event struct {
	// RunID identifies the top-level Seek call this event belongs to.
	RunID string

	// Seq is this event's position within its run, starting at 0.
	Seq int

	// NodeDescription is the node's Description, or "anonymous goal" if
	// none was set.
	NodeDescription string

	// Phase names the point in the seek lifecycle this event records
	// ("checking", "ready", "not_ready", "seeking_preconditions",
	// "preconditions_met", "running_action", "failed").
	Phase string

	// Message is the rendered trace line, e.g. "disk free: checking…".
	Message string

	// Timestamp is when the event was recorded, in RFC 3339 form so it
	// round-trips cleanly through every backing store.
	Timestamp string
}

// Store durably records and retrieves journal Events.
type Store interface {
	// Append records e. Implementations must be safe for concurrent use.
	Append(ctx context.Context, e Event) error

	// Events returns every event recorded for runID, in Seq order.
	Events(ctx context.Context, runID string) ([]Event, error)
}
