package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/lazyseq/errors"
)

// Future is a pending single-value computation.
type Future[T any] interface {
	// Await blocks until the value is available or ctx is done.
	Await(ctx context.Context) (T, error)
}

type resolvedFuture[T any] struct {
	val T
	err error
}

func (f resolvedFuture[T]) Await(context.Context) (T, error) { return f.val, f.err }

// Resolved returns a future that is already fulfilled with v.
func Resolved[T any](v T) Future[T] { return resolvedFuture[T]{val: v} }

// Rejected returns a future that is already failed with err.
func Rejected[T any](err error) Future[T] { return resolvedFuture[T]{err: err} }

type lazyFuture[T any] struct {
	mu   sync.Mutex
	fn   func(context.Context) (T, error)
	done bool
	val  T
	err  error
}

// Lazy returns a future that runs fn on the first Await, with that call's
// context, and memoizes the outcome for later calls. An outcome caused by the
// caller's context ending is not memoized.
func Lazy[T any](fn func(ctx context.Context) (T, error)) Future[T] {
	return &lazyFuture[T]{fn: fn}
}

func (f *lazyFuture[T]) Await(ctx context.Context) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done {
		return f.val, f.err
	}
	val, err := f.fn(ctx)
	if err != nil && ctx.Err() != nil {
		return val, err
	}
	f.val, f.err, f.done, f.fn = val, err, true, nil
	return f.val, f.err
}

type goFuture[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn on its own goroutine and returns a future for its outcome.
// Await returns ctx.Err() if ctx ends first; fn keeps running with the
// context given to Go.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) Future[T] {
	f := &goFuture[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

func (f *goFuture[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then returns a future that applies fn to the outcome of f once awaited.
func Then[T, O any](f Future[T], fn func(T) (O, error)) Future[O] {
	return Lazy(func(ctx context.Context) (O, error) {
		v, err := f.Await(ctx)
		if err != nil {
			var zero O
			return zero, err
		}
		return fn(v)
	})
}

// FromResultChan returns a future settled by the first value received on ch.
// A channel closed without a value rejects with an INTERNAL_ERROR.
func FromResultChan[T any](ch <-chan T) Future[T] {
	return Lazy(func(ctx context.Context) (T, error) {
		var zero T
		select {
		case v, ok := <-ch:
			if !ok {
				return zero, errors.Internal(fmt.Errorf("result channel closed without a value"))
			}
			return v, nil
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	})
}
