package emit

import "context"

// Emitter is the engine's single observability hook: a logger with a
// single println-level sink, one string per event. Deliberately narrower
// than a general pluggable-backend interface, since the evaluation core
// treats logging as a pure side channel with no feedback into seek's
// control flow. Implementations must not block seek's evaluation for long
// or panic.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(ctx context.Context, e Event)

// Emit implements Emitter.
func (f EmitterFunc) Emit(ctx context.Context, e Event) { f(ctx, e) }
