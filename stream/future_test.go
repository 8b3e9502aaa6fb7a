package stream_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kbukum/lazyseq/stream"
	"github.com/kbukum/lazyseq/testutil"
)

func TestResolvedRejected(t *testing.T) {
	if got := testutil.MustAwait(t, stream.Resolved(5)); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
	sentinel := errors.New("nope")
	if _, err := stream.Rejected[int](sentinel).Await(context.Background()); err != sentinel {
		t.Errorf("expected sentinel, got %v", err)
	}
}

func TestLazy_RunsOnceOnFirstAwait(t *testing.T) {
	calls := 0
	f := stream.Lazy(func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	if calls != 0 {
		t.Fatal("lazy future ran before Await")
	}
	for range 3 {
		if got := testutil.MustAwait(t, f); got != 42 {
			t.Errorf("got %d, want 42", got)
		}
	}
	if calls != 1 {
		t.Errorf("ran %d times, want 1", calls)
	}
}

func TestLazy_CancellationNotMemoized(t *testing.T) {
	calls := 0
	f := stream.Lazy(func(ctx context.Context) (int, error) {
		calls++
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 1, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Await(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := testutil.MustAwait(t, f); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	if calls != 2 {
		t.Errorf("ran %d times, want 2", calls)
	}
}

func TestGo(t *testing.T) {
	release := make(chan struct{})
	f := stream.Go(context.Background(), func(context.Context) (string, error) {
		<-release
		return "done", nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	close(release)
	if got := testutil.MustAwait(t, f); got != "done" {
		t.Errorf("got %q, want done", got)
	}
}

func TestThen(t *testing.T) {
	f := stream.Then(stream.Resolved(3), func(n int) (string, error) {
		return string(rune('a' + n)), nil
	})
	if got := testutil.MustAwait(t, f); got != "d" {
		t.Errorf("got %q, want d", got)
	}
}

func TestThen_PropagatesRejection(t *testing.T) {
	sentinel := errors.New("upstream")
	called := false
	f := stream.Then(stream.Rejected[int](sentinel), func(int) (int, error) {
		called = true
		return 0, nil
	})
	if _, err := f.Await(context.Background()); err != sentinel {
		t.Errorf("expected sentinel, got %v", err)
	}
	if called {
		t.Error("continuation ran on a rejected future")
	}
}

func TestFromResultChan(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 8
	if got := testutil.MustAwait(t, stream.FromResultChan[int](ch)); got != 8 {
		t.Errorf("got %d, want 8", got)
	}

	closed := make(chan int)
	close(closed)
	if _, err := stream.FromResultChan[int](closed).Await(context.Background()); err == nil {
		t.Error("expected error for closed channel")
	}
}

func TestResult_ValueOfSyncResult(t *testing.T) {
	r := stream.Count(stream.Of("a", "b"))
	if r.Pending() || r.Kind() != stream.KindSync {
		t.Fatalf("expected sync result, got %s", r.Kind())
	}
	if got, err := r.Value(); err != nil || got != 2 {
		t.Errorf("got %d err=%v, want 2", got, err)
	}
	if got := testutil.MustAwait[int](t, r); got != 2 {
		t.Errorf("Await on a sync result = %d, want 2", got)
	}
}
