package emit

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestOTelEmitterCreatesSpanPerEvent(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	emitter := NewOTelEmitter(tp.Tracer("seekgraph-test"))
	emitter.Emit(context.Background(), Event{
		RunID:       "run-1",
		Description: "disk free",
		Phase:       PhaseChecking,
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != string(PhaseChecking) {
		t.Errorf("span name = %q, want %q", span.Name, PhaseChecking)
	}

	attrs := map[string]string{}
	for _, kv := range span.Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs["seekgraph.run_id"] != "run-1" {
		t.Errorf("run_id attribute = %q", attrs["seekgraph.run_id"])
	}
	if attrs["seekgraph.description"] != "disk free" {
		t.Errorf("description attribute = %q", attrs["seekgraph.description"])
	}
}
