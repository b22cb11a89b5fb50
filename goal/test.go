package goal

import "context"

// Test is a pure, total, synchronous predicate over a context value and a
// previously-read snapshot. Testing is order-independent and side-effect
// free, so the early return of TestAll/TestAny and their map forms is not
// observable.
type Test[C, T any] func(ctx context.Context, c C, snapshot T) bool

// MapTest adapts a Test authored against context C to one driven by a
// supergraph's context C2, via a context-remapping function f.
func MapTest[C2, C, T any](t Test[C, T], f func(C2) C) Test[C2, T] {
	return func(ctx context.Context, c2 C2, snapshot T) bool {
		return t(ctx, f(c2), snapshot)
	}
}

// TestAll composes per-position tests over an aligned slice snapshot,
// returning true iff every child returns true on its slot (conjunction).
func TestAll[C, T any](tests ...Test[C, T]) Test[C, []T] {
	return func(ctx context.Context, c C, snapshot []T) bool {
		for i, t := range tests {
			if i >= len(snapshot) || !t(ctx, c, snapshot[i]) {
				return false
			}
		}
		return true
	}
}

// TestAny composes per-position tests over an aligned slice snapshot,
// returning true iff at least one child returns true on its slot
// (disjunction).
func TestAny[C, T any](tests ...Test[C, T]) Test[C, []T] {
	return func(ctx context.Context, c C, snapshot []T) bool {
		for i, t := range tests {
			if i < len(snapshot) && t(ctx, c, snapshot[i]) {
				return true
			}
		}
		return false
	}
}

// TestMapAll composes per-key tests over an aligned keyed-map snapshot,
// returning true iff every child returns true on its slot (conjunction).
func TestMapAll[C, T any](tests map[string]Test[C, T]) Test[C, map[string]T] {
	return func(ctx context.Context, c C, snapshot map[string]T) bool {
		for key, t := range tests {
			if !t(ctx, c, snapshot[key]) {
				return false
			}
		}
		return true
	}
}

// TestMapAny composes per-key tests over an aligned keyed-map snapshot,
// returning true iff at least one child returns true on its slot
// (disjunction).
func TestMapAny[C, T any](tests map[string]Test[C, T]) Test[C, map[string]T] {
	return func(ctx context.Context, c C, snapshot map[string]T) bool {
		for key, t := range tests {
			if t(ctx, c, snapshot[key]) {
				return true
			}
		}
		return false
	}
}
