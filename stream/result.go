package stream

import (
	"context"
	"sync"

	"github.com/kbukum/lazyseq/errors"
)

// Result is the outcome of a terminal operator. A result built only from
// sync inputs is computed when the operator is called; any async or deferred
// input makes it pending, computed by the first Await on the caller's
// goroutine.
type Result[T any] struct {
	op   string
	kind Kind

	mu   sync.Mutex
	run  func(context.Context) (T, error)
	done bool
	val  T
	err  error
}

// Terminal is the curried form of a terminal operator.
type Terminal[T, R any] func(Source[T]) *Result[R]

// newResult applies the asynchrony rule for terminals: sync kinds run now,
// everything else waits for Await.
func newResult[T any](op string, kind Kind, run func(context.Context) (T, error)) *Result[T] {
	r := &Result[T]{op: op, kind: kind.Join(KindSync), run: run}
	if r.kind.IsSync() {
		r.val, r.err = run(context.Background())
		r.done, r.run = true, nil
	}
	return r
}

// Kind returns KindSync for eagerly computed results and KindAsync otherwise.
func (r *Result[T]) Kind() Kind { return r.kind }

// Pending reports whether the result must be awaited.
func (r *Result[T]) Pending() bool { return !r.kind.IsSync() }

// Value returns a sync result. Pending results yield a PENDING_RESULT error.
func (r *Result[T]) Value() (T, error) {
	if r.Pending() {
		var zero T
		return zero, errors.PendingResult(r.op)
	}
	return r.val, r.err
}

// Await returns the result, computing it first if it is pending. The outcome
// is memoized unless it was caused by ctx ending.
func (r *Result[T]) Await(ctx context.Context) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return r.val, r.err
	}
	val, err := r.run(ctx)
	if err != nil && ctx.Err() != nil {
		return val, err
	}
	r.val, r.err, r.done, r.run = val, err, true, nil
	return r.val, r.err
}
