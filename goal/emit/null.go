package emit

import "context"

// NullEmitter discards every event. Passing it to the goal package's
// WithLogger has the same effect as configuring no logger at all.
type NullEmitter struct{}

// Null is the shared NullEmitter instance.
var Null = NullEmitter{}

// Emit discards the event.
func (NullEmitter) Emit(context.Context, Event) {}
