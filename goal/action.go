package goal

import "context"

// Action is an effectful mutator run against the observable world. Its
// snapshot argument is a pointer to the most recently read state, boxed as
// any because by the time an Action is attached to a Goal, the originating
// snapshot type has already been erased at the node boundary. The pointer
// is nil when no snapshot was available: the preceding read failed or
// returned StateNotFound. An Action's return value is discarded by the
// engine; only success/failure matters.
type Action[C any] func(ctx context.Context, c C, snapshot *any) error

// MapAction adapts an Action authored against context C to one driven by a
// supergraph's context C2, via a context-remapping function f.
func MapAction[C2, C any](a Action[C], f func(C2) C) Action[C2] {
	return func(ctx context.Context, c2 C2, snapshot *any) error {
		return a(ctx, f(c2), snapshot)
	}
}
