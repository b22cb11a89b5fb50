package goal

import (
	"context"
	"testing"
)

func boolState(v bool) State[any, bool] {
	return func(_ context.Context, _ any) (bool, error) { return v, nil }
}

func truthy(_ context.Context, _ any, s bool) bool { return s }

func TestOperationRejectsEmptyChildren(t *testing.T) {
	if _, err := operation[any](opAnd, nil); err != ErrEmptyOperation {
		t.Fatalf("expected ErrEmptyOperation, got %v", err)
	}
}

func TestOperationConjunctiveProbe(t *testing.T) {
	a := testable(boolState(true), truthy)
	b := testable(boolState(false), truthy)

	n, err := operation[any](opAnd, []*node[any]{a, b})
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	passed, err := n.probe(context.Background(), nil)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if passed {
		t.Error("expected conjunctive probe to fail when one child fails")
	}
}

func TestOperationDisjunctiveProbe(t *testing.T) {
	a := testable(boolState(false), truthy)
	b := testable(boolState(true), truthy)

	n, err := operation[any](opOr, []*node[any]{a, b})
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	passed, err := n.probe(context.Background(), nil)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if !passed {
		t.Error("expected disjunctive probe to pass when one child passes")
	}
}

func TestOperationAggregatesReadAnyAsSlice(t *testing.T) {
	a := testable(State[any, int](func(_ context.Context, _ any) (int, error) { return 10, nil }), func(_ context.Context, _ any, _ int) bool { return true })
	b := testable(State[any, string](func(_ context.Context, _ any) (string, error) { return "hello", nil }), func(_ context.Context, _ any, _ string) bool { return true })

	n, err := operation[any](opAll, []*node[any]{a, b})
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	snapshot, err := n.readAny(context.Background(), nil)
	if err != nil {
		t.Fatalf("readAny: %v", err)
	}
	values, ok := snapshot.([]any)
	if !ok || len(values) != 2 {
		t.Fatalf("expected a 2-element []any, got %#v", snapshot)
	}
	if values[0] != 10 || values[1] != "hello" {
		t.Errorf("unexpected aggregated snapshot: %#v", values)
	}
}

func TestWithActionDemotesOperationKeepingAggregatedProbe(t *testing.T) {
	a := testable(boolState(true), truthy)
	b := testable(boolState(true), truthy)
	op, err := operation[any](opAll, []*node[any]{a, b})
	if err != nil {
		t.Fatalf("operation: %v", err)
	}

	invoked := false
	action := Action[any](func(_ context.Context, _ any, _ *any) error {
		invoked = true
		return nil
	})
	demoted := op.withAction(action, nil)

	if demoted.kind != kindActionable {
		t.Fatalf("expected kindActionable after demotion, got %v", demoted.kind)
	}
	if demoted.children != nil {
		t.Fatalf("expected demoted node to have no children")
	}
	passed, err := demoted.probe(context.Background(), nil)
	if err != nil || !passed {
		t.Fatalf("expected demoted node to keep aggregated probe passing, got %v, %v", passed, err)
	}
	if err := demoted.runAction(context.Background(), nil); err != nil {
		t.Fatalf("runAction: %v", err)
	}
	if !invoked {
		t.Error("expected action to be invoked")
	}
}

func TestMapNodePreservesStructure(t *testing.T) {
	type inner struct{ flag bool }
	type outer struct{ inner inner }

	n := testable(
		State[inner, bool](func(_ context.Context, c inner) (bool, error) { return c.flag, nil }),
		func(_ context.Context, _ inner, s bool) bool { return s },
	)
	mapped := mapNode(n, func(o outer) inner { return o.inner })

	passed, err := mapped.probe(context.Background(), outer{inner: inner{flag: true}})
	if err != nil || !passed {
		t.Fatalf("expected mapped probe to pass, got %v, %v", passed, err)
	}
}
