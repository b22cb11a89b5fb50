package journal

import (
	"context"
	"testing"
)

func TestMemoryStoreAppendAndEvents(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	events := []Event{
		{RunID: "run-1", Seq: 0, NodeDescription: "disk free", Phase: "checking", Message: "disk free: checking…"},
		{RunID: "run-1", Seq: 1, NodeDescription: "disk free", Phase: "ready", Message: "disk free: ready!"},
		{RunID: "run-2", Seq: 0, NodeDescription: "other", Phase: "checking", Message: "other: checking…"},
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
		t.Fatalf("expected 2 events for run-1, got %d", len(got))
	}
	if got[0].Phase != "checking" || got[1].Phase != "ready" {
		t.Errorf("unexpected order: %+v", got)
	}

	none, err := store.Events(ctx, "missing")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no events for unknown run, got %v", none)
	}
}

func TestMemoryStoreEventsIsACopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.Append(ctx, Event{RunID: "run-1", NodeDescription: "a"})

	got, _ := store.Events(ctx, "run-1")
	got[0].NodeDescription = "mutated"

	again, _ := store.Events(ctx, "run-1")
	if again[0].NodeDescription != "a" {
		t.Error("Events should return a copy, not the internal slice")
	}
}
