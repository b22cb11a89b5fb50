package emit

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter implements Emitter by turning each trace event into a
// zero-duration OpenTelemetry span: each event is a point in time
// ("checking", "ready", ...), not durations, so each is recorded as its own
// span rather than as children of one long-lived per-node span. Adapted
// per traced phase.
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter creates an OTelEmitter using tracer (e.g.
// otel.Tracer("seekgraph")).
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

// Emit starts and immediately ends a span named after e's phase, carrying
// RunID/Description/Phase as attributes.
func (o *OTelEmitter) Emit(ctx context.Context, e Event) {
	_, span := o.tracer.Start(ctx, string(e.Phase))
	defer span.End()

	span.SetAttributes(
		attribute.String("seekgraph.run_id", e.RunID),
		attribute.String("seekgraph.description", e.Description),
		attribute.String("seekgraph.phase", string(e.Phase)),
	)
}
