package journal

import (
	"context"
	"testing"
)

func TestSQLiteStoreAppendAndEvents(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	events := []Event{
		{RunID: "run-1", Seq: 0, NodeDescription: "disk free", Phase: "checking", Message: "disk free: checking…", Timestamp: "2026-01-01T00:00:00Z"},
		{RunID: "run-1", Seq: 1, NodeDescription: "disk free", Phase: "ready", Message: "disk free: ready!", Timestamp: "2026-01-01T00:00:01Z"},
	}
	for _, e := range events {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Events(ctx, "run-1")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Phase != "checking" || got[1].Phase != "ready" {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestSQLiteStoreEventsEmptyForUnknownRun(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	got, err := store.Events(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events, got %v", got)
	}
}
