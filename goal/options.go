package goal

import (
	"github.com/edgeagent/seekgraph/goal/emit"
	"github.com/edgeagent/seekgraph/goal/journal"
)

// Option is a functional option for configuring an Engine: each Option
// mutates a shared config struct before it is baked into an immutable
// Engine, so options can be validated and composed before anything runs.
type Option func(*engineConfig) error

// engineConfig collects options before they are applied to an Engine.
type engineConfig struct {
	emitter    emit.Emitter
	metrics    *Metrics
	stateRetry *RetryPolicy
	journal    journal.Store
}

// WithLogger sets the Emitter that receives the seven spec trace events
// (checking, ready, not ready, seeking preconditions, preconditions met,
// running the action, failed) for every seek call.
//
// Default: nil (no events are emitted).
func WithLogger(emitter emit.Emitter) Option {
	return func(cfg *engineConfig) error {
		cfg.emitter = emitter
		return nil
	}
}

// WithMetrics attaches a Metrics collector. Seeks, action invocations,
// probe durations, and precondition evaluations are recorded as they occur.
//
// Default: nil (metrics recording is skipped).
func WithMetrics(metrics *Metrics) Option {
	return func(cfg *engineConfig) error {
		cfg.metrics = metrics
		return nil
	}
}

// WithStateRetry installs a default backoff policy the engine applies
// around every node's probe (state read plus test), retrying non-
// StateNotFound errors with the same math as RetryState. Action is never
// retried, and a StateNotFound is never retried, only ever returned.
// A State wrapped with RetryState that still fails after its own attempts
// surfaces its error to the engine, which then retries it under this
// policy as well.
//
// Default: nil (no retry; a single failed read fails the probe).
func WithStateRetry(rp *RetryPolicy) Option {
	return func(cfg *engineConfig) error {
		cfg.stateRetry = rp
		return nil
	}
}

// WithJournal attaches a durable audit trail: every trace event is also
// appended to store, in addition to being sent to the configured Emitter.
//
// Default: nil (no journal entries are recorded).
func WithJournal(store journal.Store) Option {
	return func(cfg *engineConfig) error {
		cfg.journal = store
		return nil
	}
}
