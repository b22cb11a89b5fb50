package goal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edgeagent/seekgraph/goal/emit"
	"github.com/edgeagent/seekgraph/goal/journal"
)

// Engine evaluates Goals: it owns the logger, metrics, state-retry policy,
// and journal that every seek call is run against. An Engine has no
// mutable per-run state, so one Engine is shared safely across concurrent
// seeks.
type Engine struct {
	emitter    emit.Emitter
	metrics    *Metrics
	stateRetry *RetryPolicy
	journal    journal.Store
}

// defaultEngine is used by Goal.Seek when a Goal has no Engine attached via
// WithEngine. It emits nothing and retries nothing, matching the behavior
// of calling Seek directly with a freshly constructed Engine.
var defaultEngine = New()

// New creates an Engine configured by opts. With no options, the Engine
// performs plain evaluation: no logging, no metrics, no retry, no journal.
func New(opts ...Option) *Engine {
	cfg := &engineConfig{}
	for _, opt := range opts {
		_ = opt(cfg) // every Option in this package always returns nil
	}

	return &Engine{
		emitter:    cfg.emitter,
		metrics:    cfg.metrics,
		stateRetry: cfg.stateRetry,
		journal:    cfg.journal,
	}
}

// runState threads the identifiers and sequence counter a single Seek call
// needs to emit and journal its trace, without polluting the node's own
// context type C.
type runState struct {
	runID string
	mu    sync.Mutex
	seq   int
}

// Seek evaluates g against c using e, returning whether g's goal is met.
// This is the free-function form required because a generic method cannot
// introduce g's context type parameter independently of e's receiver.
func Seek[C any](ctx context.Context, e *Engine, g *Goal[C], c C) (bool, error) {
	if e == nil {
		e = defaultEngine
	}
	rs := &runState{runID: uuid.NewString()}
	met, err := seek(ctx, e, rs, g.n, c)

	outcome := "met"
	switch {
	case err != nil:
		outcome = "error"
	case !met:
		outcome = "unmet"
	}
	e.metrics.RecordSeek(outcome)

	return met, err
}

// seek implements the dispatch algorithm: Operation nodes fan out to their
// children by operator; every other node is checked, and if unmet and
// actionable, its precondition is recursively sought before the action
// runs and the node is re-checked.
func seek[C any](ctx context.Context, e *Engine, rs *runState, n *node[C], c C) (bool, error) {
	if n.kind == kindOperation {
		return seekOperation(ctx, e, rs, n, c)
	}

	description := describeNode(n, c)

	e.emit(ctx, rs, description, emit.PhaseChecking)
	met, err := probeWithRetry(ctx, e, n, c)
	if err != nil && !IsStateNotFound(err) {
		return false, err
	}

	if met {
		e.emit(ctx, rs, description, emit.PhaseReady)
		return true, nil
	}

	if n.kind != kindActionable {
		e.emit(ctx, rs, description, emit.PhaseNotReady)
		return false, nil
	}

	if n.requires != nil {
		e.emit(ctx, rs, description, emit.PhaseSeekingPre)
		e.metrics.RecordPreconditionEvaluated()
		preMet, err := seek(ctx, e, rs, n.requires, c)
		if err != nil {
			return false, err
		}
		if !preMet {
			e.emit(ctx, rs, description, emit.PhaseFailed)
			return false, nil
		}
		e.emit(ctx, rs, description, emit.PhasePreconditioned)
	}

	e.emit(ctx, rs, description, emit.PhaseRunningAction)
	e.metrics.RecordAction(description)

	if err := n.runAction(ctx, c); err != nil {
		e.emit(ctx, rs, description, emit.PhaseFailed)
		return false, err
	}

	met, err = probeWithRetry(ctx, e, n, c)
	if err != nil && !IsStateNotFound(err) {
		return false, err
	}
	if !met {
		e.emit(ctx, rs, description, emit.PhaseFailed)
		return false, nil
	}

	e.emit(ctx, rs, description, emit.PhaseReady)
	return true, nil
}

// seekOperation evaluates an Operation's children by its operator: and/or
// run sequentially with short-circuit, all/any run in parallel without
// short-circuit. It never probes or acts at this level — only its children
// do.
func seekOperation[C any](ctx context.Context, e *Engine, rs *runState, n *node[C], c C) (bool, error) {
	switch n.op {
	case opAnd:
		for _, child := range n.children {
			met, err := seek(ctx, e, rs, child, c)
			if err != nil {
				return false, err
			}
			if !met {
				return false, nil
			}
		}
		return true, nil

	case opOr:
		for _, child := range n.children {
			met, err := seek(ctx, e, rs, child, c)
			if err == nil && met {
				return true, nil
			}
		}
		return false, nil

	case opAll:
		return seekParallel(ctx, e, rs, n.children, c, true)

	default: // opAny
		return seekParallel(ctx, e, rs, n.children, c, false)
	}
}

// seekParallel seeks every child concurrently and folds the results per
// conjunctive (all must be met) or disjunctive (any must be met) rule. A
// child error rejects a conjunctive fold; in a disjunctive fold it only
// counts as "not met".
func seekParallel[C any](ctx context.Context, e *Engine, rs *runState, children []*node[C], c C, conjunctive bool) (bool, error) {
	type result struct {
		met bool
		err error
	}
	results := make([]result, len(children))
	done := make(chan int, len(children))

	for i, child := range children {
		go func(i int, child *node[C]) {
			met, err := seek(ctx, e, rs, child, c)
			results[i] = result{met: met, err: err}
			done <- i
		}(i, child)
	}
	for range children {
		<-done
	}

	if conjunctive {
		errs := make([]error, len(results))
		for i, r := range results {
			errs[i] = r.err
		}
		if err := firstError(errs); err != nil {
			return false, err
		}
	}

	for _, r := range results {
		if conjunctive && !r.met {
			return false, nil
		}
		if !conjunctive && r.met {
			return true, nil
		}
	}
	return conjunctive, nil
}

// probeWithRetry runs n's probe, retrying according to e's stateRetry
// policy (if any) on non-StateNotFound errors. It also records probe
// duration metrics around the whole attempt sequence.
func probeWithRetry[C any](ctx context.Context, e *Engine, n *node[C], c C) (bool, error) {
	start := time.Now()
	defer func() { e.metrics.RecordProbeDuration(time.Since(start)) }()

	if e.stateRetry == nil {
		return n.probe(ctx, c)
	}

	rp := e.stateRetry
	var lastMet bool
	var lastErr error
	for attempt := 0; attempt < rp.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := computeBackoff(attempt-1, rp.BaseDelay, rp.MaxDelay, nil)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return false, ctx.Err()
			case <-timer.C:
			}
		}

		met, err := n.probe(ctx, c)
		if err == nil {
			return met, nil
		}
		if IsStateNotFound(err) {
			return false, err
		}
		lastMet, lastErr = met, err
		if rp.Retryable != nil && !rp.Retryable(err) {
			return lastMet, lastErr
		}
	}
	return lastMet, lastErr
}

// describeNode renders n's description, falling back to a generic default
// for goals without one.
func describeNode[C any](n *node[C], c C) string {
	if n.describe == nil {
		return "anonymous goal"
	}
	return n.describe(c)
}

// emit sends an event to e's configured Emitter and Journal, if any.
func (e *Engine) emit(ctx context.Context, rs *runState, description string, phase emit.Phase) {
	if e.emitter == nil && e.journal == nil {
		return
	}

	evt := emit.Event{
		RunID:       rs.runID,
		Description: description,
		Phase:       phase,
		Time:        time.Now(),
	}
	if e.emitter != nil {
		e.emitter.Emit(ctx, evt)
	}
	if e.journal != nil {
		rs.mu.Lock()
		defer rs.mu.Unlock()
		seq := rs.seq
		rs.seq++
		_ = e.journal.Append(ctx, journal.Event{
			RunID:           rs.runID,
			Seq:             seq,
			NodeDescription: description,
			Phase:           string(phase),
			Message:         evt.Message(),
			Timestamp:       evt.Time.UTC().Format(time.RFC3339Nano),
		})
	}
}
