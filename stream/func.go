package stream

import (
	"context"

	"github.com/kbukum/lazyseq/errors"
)

// Func is a caller-supplied function together with its kind. Sync functions
// never block; async functions may, and make every operator they are passed
// to produce an async result.
type Func[I, O any] struct {
	kind Kind
	call func(context.Context, I) (O, error)
}

// Kind returns the kind of the function.
func (f Func[I, O]) Kind() Kind { return f.kind }

// Call invokes the function.
func (f Func[I, O]) Call(ctx context.Context, in I) (O, error) { return f.call(ctx, in) }

func (f Func[I, O]) valid() bool { return f.call != nil }

// Fn wraps an infallible sync function.
func Fn[I, O any](fn func(I) O) Func[I, O] {
	if fn == nil {
		return Func[I, O]{}
	}
	return Func[I, O]{kind: KindSync, call: func(_ context.Context, in I) (O, error) {
		return fn(in), nil
	}}
}

// TryFn wraps a fallible sync function. Its errors propagate unmodified.
func TryFn[I, O any](fn func(I) (O, error)) Func[I, O] {
	if fn == nil {
		return Func[I, O]{}
	}
	return Func[I, O]{kind: KindSync, call: func(_ context.Context, in I) (O, error) {
		return fn(in)
	}}
}

// AsyncFn wraps a function that may block.
func AsyncFn[I, O any](fn func(context.Context, I) (O, error)) Func[I, O] {
	return Func[I, O]{kind: KindAsync, call: fn}
}

// FutureFn wraps a function returning a pending value, awaited per call.
func FutureFn[I, O any](fn func(I) Future[O]) Func[I, O] {
	if fn == nil {
		return Func[I, O]{}
	}
	return Func[I, O]{kind: KindAsync, call: func(ctx context.Context, in I) (O, error) {
		f := fn(in)
		if f == nil {
			var zero O
			return zero, errors.InvalidArgument("futureFn", "result", "nil future")
		}
		return f.Await(ctx)
	}}
}

// Pred wraps an infallible sync predicate.
func Pred[T any](fn func(T) bool) Func[T, bool] { return Fn(fn) }

// TryPred wraps a fallible sync predicate.
func TryPred[T any](fn func(T) (bool, error)) Func[T, bool] { return TryFn(fn) }

// AsyncPred wraps a predicate that may block.
func AsyncPred[T any](fn func(context.Context, T) (bool, error)) Func[T, bool] {
	return AsyncFn(fn)
}

// Func2 is the two-argument counterpart of Func, used by folds and zipWith.
type Func2[A, B, O any] struct {
	kind Kind
	call func(context.Context, A, B) (O, error)
}

// Kind returns the kind of the function.
func (f Func2[A, B, O]) Kind() Kind { return f.kind }

// Call invokes the function.
func (f Func2[A, B, O]) Call(ctx context.Context, a A, b B) (O, error) { return f.call(ctx, a, b) }

func (f Func2[A, B, O]) valid() bool { return f.call != nil }

// Fn2 wraps an infallible sync two-argument function.
func Fn2[A, B, O any](fn func(A, B) O) Func2[A, B, O] {
	if fn == nil {
		return Func2[A, B, O]{}
	}
	return Func2[A, B, O]{kind: KindSync, call: func(_ context.Context, a A, b B) (O, error) {
		return fn(a, b), nil
	}}
}

// TryFn2 wraps a fallible sync two-argument function.
func TryFn2[A, B, O any](fn func(A, B) (O, error)) Func2[A, B, O] {
	if fn == nil {
		return Func2[A, B, O]{}
	}
	return Func2[A, B, O]{kind: KindSync, call: func(_ context.Context, a A, b B) (O, error) {
		return fn(a, b)
	}}
}

// AsyncFn2 wraps a two-argument function that may block.
func AsyncFn2[A, B, O any](fn func(context.Context, A, B) (O, error)) Func2[A, B, O] {
	return Func2[A, B, O]{kind: KindAsync, call: fn}
}
