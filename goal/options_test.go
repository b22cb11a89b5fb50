package goal

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edgeagent/seekgraph/goal/emit"
	"github.com/edgeagent/seekgraph/goal/journal"
)

func TestNewWithNoOptionsProducesPlainEngine(t *testing.T) {
	e := New()
	if e.emitter != nil || e.metrics != nil || e.stateRetry != nil || e.journal != nil {
		t.Fatalf("expected a bare Engine, got %+v", e)
	}
}

func TestOptionsConfigureEngine(t *testing.T) {
	emitter := emit.Null
	metrics := NewMetrics(prometheus.NewRegistry())
	retry := &RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	store := journal.NewMemoryStore()

	e := New(
		WithLogger(emitter),
		WithMetrics(metrics),
		WithStateRetry(retry),
		WithJournal(store),
	)

	if e.emitter != emitter {
		t.Error("expected emitter to be set")
	}
	if e.metrics != metrics {
		t.Error("expected metrics to be set")
	}
	if e.stateRetry != retry {
		t.Error("expected stateRetry to be set")
	}
	if e.journal != store {
		t.Error("expected journal to be set")
	}
}

func TestEngineIsSafeForConcurrentSeeks(t *testing.T) {
	e := New()
	g := FromState(func(_ context.Context, _ any) (bool, error) { return true, nil })

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := Seek(context.Background(), e, g, nil)
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent seek failed: %v", err)
		}
	}
}
