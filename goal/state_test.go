package goal

import (
	"context"
	"errors"
	"testing"
)

func TestMapStateRemapsContext(t *testing.T) {
	type inner struct{ n int }
	type outer struct{ inner inner }

	s := State[inner, int](func(_ context.Context, c inner) (int, error) { return c.n, nil })
	mapped := MapState(s, func(o outer) inner { return o.inner })

	got, err := mapped(context.Background(), outer{inner: inner{n: 7}})
	if err != nil || got != 7 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestStateSlicePreservesOrder(t *testing.T) {
	states := []State[any, int]{
		func(_ context.Context, _ any) (int, error) { return 1, nil },
		func(_ context.Context, _ any) (int, error) { return 2, nil },
		func(_ context.Context, _ any) (int, error) { return 3, nil },
	}
	composite := StateSlice(states...)

	got, err := composite(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 3}
	for i, v := range want {
		if got[i] != v {
			t.Errorf("index %d: got %d, want %d", i, got[i], v)
		}
	}
}

func TestStateSlicePropagatesStateNotFoundOverPlainError(t *testing.T) {
	states := []State[any, int]{
		func(_ context.Context, _ any) (int, error) { return 0, errors.New("boom") },
		func(_ context.Context, _ any) (int, error) { return 0, NewStateNotFound("absent", nil) },
	}
	_, err := StateSlice(states...)(context.Background(), nil)
	if !IsStateNotFound(err) {
		t.Fatalf("expected StateNotFound to win, got %v", err)
	}
}

func TestStateMapPreservesKeys(t *testing.T) {
	states := map[string]State[any, int]{
		"a": func(_ context.Context, _ any) (int, error) { return 10, nil },
		"b": func(_ context.Context, _ any) (int, error) { return 20, nil },
	}
	got, err := StateMap(states)(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["a"] != 10 || got["b"] != 20 {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestFirstErrorPrefersStateNotFound(t *testing.T) {
	plain := errors.New("plain")
	notFound := NewStateNotFound("absent", nil)

	got := firstError([]error{plain, notFound})
	if !IsStateNotFound(got) {
		t.Fatalf("expected StateNotFound, got %v", got)
	}

	got = firstError([]error{nil, plain})
	if got != plain {
		t.Fatalf("expected plain error, got %v", got)
	}

	if got := firstError([]error{nil, nil}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
