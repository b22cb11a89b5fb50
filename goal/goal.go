package goal

import "context"

// Goal is the user-facing handle that owns one node and exposes the
// combinators: State, Test, Seek, Description, Action,
// Requires. A Goal wraps its node by shared reference — combinators
// produce a new Goal wrapping a new node, never mutating the receiver.
type Goal[C any] struct {
	n      *node[C]
	engine *Engine
}

// Testable builds a Goal from a leaf state+test pair with no remediation
// Test must be non-nil; see FromState for the
// bool-snapshot convenience constructor.
func Testable[C, T any](state State[C, T], test Test[C, T]) *Goal[C] {
	if test == nil {
		panic(ErrNoTest)
	}
	return &Goal[C]{n: testable(state, test)}
}

// FromState builds a Goal from a bare State[C, bool], using the snapshot's
// own truthiness as the test (a Goal built from a bare state
// returning a boolean uses truthiness as the default test").
func FromState[C any](state State[C, bool]) *Goal[C] {
	identity := func(_ context.Context, _ C, s bool) bool { return s }
	return &Goal[C]{n: testable(state, identity)}
}

// Actionable builds a Goal from a leaf state+test pair extended with a
// remediation action and an optional pre-condition Goal
// Actionable). Pass a nil requires for no pre-condition.
func Actionable[C, T any](state State[C, T], test Test[C, T], action Action[C], requires *Goal[C]) *Goal[C] {
	if test == nil {
		panic(ErrNoTest)
	}
	var req *node[C]
	if requires != nil {
		req = requires.n
	}
	return &Goal[C]{n: actionable(state, test, action, req)}
}

func goalNodes[C any](goals []*Goal[C]) []*node[C] {
	nodes := make([]*node[C], len(goals))
	for i, g := range goals {
		nodes[i] = g.n
	}
	return nodes
}

// And builds a Goal combining children sequentially, left to right, short-
// circuiting at the first false.
func And[C any](children ...*Goal[C]) *Goal[C] {
	n, err := operation(opAnd, goalNodes(children))
	if err != nil {
		panic(err)
	}
	return &Goal[C]{n: n}
}

// Or builds a Goal combining children sequentially, left to right, short-
// circuiting at the first true; a rejected child does not abort evaluation.
func Or[C any](children ...*Goal[C]) *Goal[C] {
	n, err := operation(opOr, goalNodes(children))
	if err != nil {
		panic(err)
	}
	return &Goal[C]{n: n}
}

// All builds a Goal combining children in parallel; every child is seeked
// regardless of outcome, and a single rejection rejects the whole operation.
func All[C any](children ...*Goal[C]) *Goal[C] {
	n, err := operation(opAll, goalNodes(children))
	if err != nil {
		panic(err)
	}
	return &Goal[C]{n: n}
}

// Any builds a Goal combining children in parallel; every child is seeked
// regardless of outcome, and rejections are absorbed into "not true" (spec
// §4.5).
func Any[C any](children ...*Goal[C]) *Goal[C] {
	n, err := operation(opAny, goalNodes(children))
	if err != nil {
		panic(err)
	}
	return &Goal[C]{n: n}
}

func goalNodeMap[C any](children map[string]*Goal[C]) []*node[C] {
	nodes := make([]*node[C], 0, len(children))
	for _, g := range children {
		nodes = append(nodes, g.n)
	}
	return nodes
}

// AllMap builds an All Goal from a keyed record of Goals. The keys are not
// kept: the children are stored in map iteration order, and the aggregated
// snapshot from State is a []any in that order.
func AllMap[C any](children map[string]*Goal[C]) *Goal[C] {
	n, err := operation(opAll, goalNodeMap(children))
	if err != nil {
		panic(err)
	}
	return &Goal[C]{n: n}
}

// AnyMap builds an Any Goal from a keyed record of Goals. As with AllMap,
// the keys are not kept.
func AnyMap[C any](children map[string]*Goal[C]) *Goal[C] {
	n, err := operation(opAny, goalNodeMap(children))
	if err != nil {
		panic(err)
	}
	return &Goal[C]{n: n}
}

// Always returns a Goal that is unconditionally satisfied.
func Always[C any]() *Goal[C] {
	return FromState(func(_ context.Context, _ C) (bool, error) { return true, nil })
}

// Never returns a Goal that is unconditionally unsatisfied.
func Never[C any]() *Goal[C] {
	return FromState(func(_ context.Context, _ C) (bool, error) { return false, nil })
}

// Map re-maps a Goal authored against context C to one driven by a
// supergraph's context C2, via a context-remapping function f
// "context re-mapping"). This is the mechanism for plugging a generic
// sub-goal into a more specific parent.
func Map[C2, C any](g *Goal[C], f func(C2) C) *Goal[C2] {
	return &Goal[C2]{n: mapNode(g.n, f), engine: g.engine}
}

// Description attaches a context-dependent label used only for logging
// returning a new Goal.
func (g *Goal[C]) Description(d func(C) string) *Goal[C] {
	return &Goal[C]{n: g.n.withDescribe(d), engine: g.engine}
}

// Action attaches (or replaces) the remediation action on g, returning a
// new Goal. If g wraps an Operation, this demotes it to an Actionable that
// keeps the Operation's aggregated state/test but loses the operator's
// evaluation semantics.
func (g *Goal[C]) Action(a Action[C]) *Goal[C] {
	var requires *node[C]
	if g.n.kind == kindActionable {
		requires = g.n.requires
	}
	return &Goal[C]{n: g.n.withAction(a, requires), engine: g.engine}
}

// Requires attaches (or replaces) the pre-condition on g, returning a new
// Goal. If g wraps an Operation, this demotes it to an Actionable (spec
// §3/§9); callers typically chain .Action(...) afterward to supply the
// remediation, since a demoted Operation has no action of its own yet.
func (g *Goal[C]) Requires(pre *Goal[C]) *Goal[C] {
	var preNode *node[C]
	if pre != nil {
		preNode = pre.n
	}
	return &Goal[C]{n: g.n.withRequires(preNode), engine: g.engine}
}

// WithEngine attaches an Engine (logger, metrics, state-retry policy,
// journal) to g, used by subsequent calls to Seek. Returns a new Goal.
func (g *Goal[C]) WithEngine(e *Engine) *Goal[C] {
	return &Goal[C]{n: g.n, engine: e}
}

// State reads and returns the (type-erased) aggregated snapshot for g,
// without applying any test. For an Operation this is a []any of its
// children's own snapshots in child order; no keyed record form is
// produced, including for AllMap/AnyMap.
func (g *Goal[C]) State(ctx context.Context, c C) (any, error) {
	return g.n.readAny(ctx, c)
}

// Test reads g's snapshot and applies its test, swallowing StateNotFound
// into false: test(c) swallows StateNotFound into false.
func (g *Goal[C]) Test(ctx context.Context, c C) bool {
	passed, err := g.n.probe(ctx, c)
	if err != nil {
		return false
	}
	return passed
}

// Seek is the engine's entry point: it recursively tests,
// backtracks to pre-conditions, invokes actions, and re-verifies, driving
// the observable world toward g. It uses g's attached Engine if one was set
// via WithEngine, otherwise the package default (a no-op logger, no
// metrics, no retry).
func (g *Goal[C]) Seek(ctx context.Context, c C) (bool, error) {
	return Seek(ctx, g.engine, g, c)
}
