package testutil

import (
	"context"
	"slices"
	"testing"

	"github.com/kbukum/lazyseq/stream"
)

// MustCollect drains src with a background context and fails the test on
// error.
func MustCollect[T any](t testing.TB, src stream.Source[T]) []T {
	t.Helper()
	got, err := stream.Collect(context.Background(), src)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	return got
}

// MustValue returns the value of a result that must already be computed.
func MustValue[T any](t testing.TB, r *stream.Result[T]) T {
	t.Helper()
	if r.Pending() {
		t.Fatalf("expected a sync result, got %s", r.Kind())
	}
	v, err := r.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	return v
}

// MustAwait awaits f with a background context and fails the test on error.
func MustAwait[T any](t testing.TB, f stream.Future[T]) T {
	t.Helper()
	v, err := f.Await(context.Background())
	if err != nil {
		t.Fatalf("await: %v", err)
	}
	return v
}

// Equal fails the test unless got and want hold the same values in order.
func Equal[T comparable](t testing.TB, got, want []T) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// KindIs fails the test unless src reports want.
func KindIs[T any](t testing.TB, src stream.Source[T], want stream.Kind) {
	t.Helper()
	if got := src.Kind(); got != want {
		t.Errorf("kind = %s, want %s", got, want)
	}
}
