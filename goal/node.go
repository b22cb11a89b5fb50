package goal

import "context"

// operator identifies which of the four combinators an Operation node
// evaluates under.
type operator int

const (
	opAnd operator = iota
	opOr
	opAll
	opAny
)

// kind discriminates the node variants. A node carries a
// state+test pair in every case; Actionable adds action/requires, Operation
// adds op/children instead. Described is a facet (describe, possibly nil),
// not a separate kind.
type kind int

const (
	kindTestable kind = iota
	kindActionable
	kindOperation
)

// node is the single recursive datatype of the goal graph. It is
// generic only in the context type C: the snapshot type T of any given leaf
// is erased to any at this boundary, since an Operation's children are
// typically heterogeneous in T (a file-exists probe and a config-contents
// probe have different snapshot types) and Go generics have no mechanism
// for a recursive type to range over a family of different T per child.
// Every State/Test pair is still fully typed at its
// construction call site in Testable/Actionable; only the shared recursive
// structure loses static T.
//
// Nodes are immutable values: every combinator in this package returns a
// new node rather than mutating the receiver, so sub-graphs may safely be
// shared as children of multiple parents.
type node[C any] struct {
	kind kind
	op   operator

	// children holds an Operation's sub-nodes, in authoring order. Always
	// non-empty for a valid Operation (enforced at construction).
	children []*node[C]

	// probe combines a State read with its Test, returning the pass/fail
	// result. For Testable/Actionable this is the leaf's own state+test;
	// for Operation this is the *aggregated* state+test built from the
	// children for external inspection only; seek's dispatch
	// on an Operation node never calls probe, it recursively seeks
	// children per the operator's rule instead.
	probe func(ctx context.Context, c C) (bool, error)

	// readAny returns the raw (type-erased) snapshot a probe would test,
	// without applying the test. Used to build Goal.State() and to supply
	// Operation's aggregated probe from its children's readers.
	readAny func(ctx context.Context, c C) (any, error)

	// runAction re-reads state (tolerating any failure, including
	// StateNotFound, with a nil snapshot) and invokes the attached Action.
	// nil iff the node is not Actionable.
	runAction func(ctx context.Context, c C) error

	// requires is the Actionable's pre-condition sub-node, itself a full
	// node (possibly an Operation). nil if there is no pre-condition.
	requires *node[C]

	// describe renders a context-dependent label for logging (the
	// Described facet). nil means "anonymous goal".
	describe func(c C) string
}

// withDescribe returns a shallow copy of n with describe replaced.
func (n *node[C]) withDescribe(d func(C) string) *node[C] {
	cp := *n
	cp.describe = d
	return &cp
}

// withAction returns a new node that is Actionable, keeping n's probe and
// readAny (its aggregated state/test if n was an Operation — the
// Operation-to-Actionable demotion), with action and requires
// attached. requires may be nil to leave any existing pre-condition
// untouched when n was already Actionable, or to mean "no pre-condition".
func (n *node[C]) withAction(action Action[C], requires *node[C]) *node[C] {
	cp := *n
	cp.kind = kindActionable
	cp.children = nil
	cp.runAction = func(ctx context.Context, c C) error {
		snapshot, err := n.readAny(ctx, c)
		var snapshotPtr *any
		if err == nil {
			snapshotPtr = &snapshot
		}
		return action(ctx, c, snapshotPtr)
	}
	if requires != nil {
		cp.requires = requires
	}
	return &cp
}

// withRequires returns a new node that is Actionable, keeping n's probe,
// readAny, and any existing action, with requires replaced. If n was not
// already Actionable (i.e. it was an Operation being demoted), a no-op
// action is installed so the node remains well-formed; callers are expected
// to also call withAction in that case via Goal.Action.
func (n *node[C]) withRequires(requires *node[C]) *node[C] {
	cp := *n
	cp.kind = kindActionable
	cp.children = nil
	cp.requires = requires
	if n.runAction == nil {
		cp.runAction = func(ctx context.Context, c C) error { return nil }
	}
	return &cp
}

// testable builds a Testable node from a typed State/Test pair.
func testable[C, T any](state State[C, T], test Test[C, T]) *node[C] {
	probe := func(ctx context.Context, c C) (bool, error) {
		snapshot, err := state(ctx, c)
		if err != nil {
			if IsStateNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return test(ctx, c, snapshot), nil
	}
	readAny := func(ctx context.Context, c C) (any, error) {
		return state(ctx, c)
	}
	return &node[C]{kind: kindTestable, probe: probe, readAny: readAny}
}

// actionable builds an Actionable node from a typed State/Test/Action
// triple plus an optional pre-condition node.
func actionable[C, T any](state State[C, T], test Test[C, T], action Action[C], requires *node[C]) *node[C] {
	n := testable(state, test)
	n.kind = kindActionable
	n.runAction = func(ctx context.Context, c C) error {
		snapshot, err := state(ctx, c)
		var snapshotPtr *any
		if err == nil {
			var boxed any = snapshot
			snapshotPtr = &boxed
		}
		return action(ctx, c, snapshotPtr)
	}
	n.requires = requires
	return n
}

// operation builds an Operation node from children and an operator. The
// aggregated probe/readAny are derived from the children's own readAny,
// matching the tuple-form State/Test composition: parallel
// reads, conjunction for and/all, disjunction for or/any.
func operation[C any](op operator, children []*node[C]) (*node[C], error) {
	if len(children) == 0 {
		return nil, ErrEmptyOperation
	}

	readAny := func(ctx context.Context, c C) (any, error) {
		snapshots := make([]any, len(children))
		errs := make([]error, len(children))
		done := make(chan int, len(children))
		for i, child := range children {
			i, child := i, child
			go func() {
				snapshots[i], errs[i] = child.readAny(ctx, c)
				done <- i
			}()
		}
		for range children {
			<-done
		}
		if err := firstError(errs); err != nil {
			return nil, err
		}
		return snapshots, nil
	}

	conjunctive := op == opAnd || op == opAll
	probe := func(ctx context.Context, c C) (bool, error) {
		passed := make([]bool, len(children))
		errs := make([]error, len(children))
		done := make(chan int, len(children))
		for i, child := range children {
			i, child := i, child
			go func() {
				passed[i], errs[i] = child.probe(ctx, c)
				done <- i
			}()
		}
		for range children {
			<-done
		}
		if err := firstError(errs); err != nil {
			return false, err
		}
		for _, p := range passed {
			if conjunctive && !p {
				return false, nil
			}
			if !conjunctive && p {
				return true, nil
			}
		}
		return conjunctive, nil
	}

	return &node[C]{
		kind:     kindOperation,
		op:       op,
		children: children,
		probe:    probe,
		readAny:  readAny,
	}, nil
}

// mapNode structurally re-maps a node authored against context C to one
// driven by a supergraph's context C2 (context re-mapping is
// structure-preserving"). All closures, and requires/children recursively,
// are rewrapped through f; the variant tag is unchanged.
func mapNode[C2, C any](n *node[C], f func(C2) C) *node[C2] {
	if n == nil {
		return nil
	}
	out := &node[C2]{
		kind: n.kind,
		op:   n.op,
	}
	out.probe = func(ctx context.Context, c2 C2) (bool, error) {
		return n.probe(ctx, f(c2))
	}
	out.readAny = func(ctx context.Context, c2 C2) (any, error) {
		return n.readAny(ctx, f(c2))
	}
	if n.runAction != nil {
		out.runAction = func(ctx context.Context, c2 C2) error {
			return n.runAction(ctx, f(c2))
		}
	}
	if n.requires != nil {
		out.requires = mapNode(n.requires, f)
	}
	if n.children != nil {
		out.children = make([]*node[C2], len(n.children))
		for i, child := range n.children {
			out.children[i] = mapNode(child, f)
		}
	}
	if n.describe != nil {
		describe := n.describe
		out.describe = func(c2 C2) string { return describe(f(c2)) }
	}
	return out
}
