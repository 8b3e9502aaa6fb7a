package stream

import (
	"context"

	"github.com/kbukum/lazyseq/errors"
)

// Found is the outcome of Find. OK is false when no value matched.
type Found[T any] struct {
	Value T
	OK    bool
}

// ToSlice exhausts src into a slice. The result is always pending, whatever
// the kind of src; use Collect for a one-call form.
func ToSlice[T any](src Source[T]) *Result[[]T] {
	return newResult("toSlice", KindAsync, func(ctx context.Context) ([]T, error) {
		if src == nil {
			return nil, errors.InvalidSource("toSlice", src)
		}
		defer src.Close()
		var result []T
		for {
			val, ok, err := src.Next(ctx)
			if err != nil {
				return result, err
			}
			if !ok {
				return result, nil
			}
			result = append(result, val)
		}
	})
}

// Collect runs src to exhaustion and returns all values as a slice.
func Collect[T any](ctx context.Context, src Source[T]) ([]T, error) {
	return ToSlice(src).Await(ctx)
}

// Reduce folds src left to right starting from init.
func Reduce[T, R any](src Source[T], init R, fn Func2[R, T, R]) *Result[R] {
	if src == nil {
		return failedResult[R]("reduce", errors.InvalidSource("reduce", src))
	}
	if !fn.valid() {
		return failedResult[R]("reduce", errors.InvalidArgument("reduce", "fn", "must not be nil"))
	}
	return newResult("reduce", src.Kind().Join(fn.Kind()), func(ctx context.Context) (R, error) {
		defer src.Close()
		acc := init
		for {
			val, ok, err := src.Next(ctx)
			if err != nil {
				return acc, err
			}
			if !ok {
				return acc, nil
			}
			acc, err = fn.call(ctx, acc, val)
			if err != nil {
				return acc, err
			}
		}
	})
}

// Scan is the non-terminal form of Reduce: it yields the accumulator after
// every value of src.
func Scan[T, R any](src Source[T], init R, fn Func2[R, T, R]) Source[R] {
	if src == nil {
		return invalid[R]("scan", src)
	}
	if !fn.valid() {
		return invalidArg[R](src.Kind(), "scan", "fn")
	}
	return &scanIter[T, R]{source: src, acc: init, fn: fn, kind: src.Kind().Join(fn.Kind())}
}

// Every reports whether pred holds for every value. It stops pulling at the
// first value for which pred fails. An empty source yields true.
func Every[T any](src Source[T], pred Func[T, bool]) *Result[bool] {
	return decide("every", src, pred, false)
}

// Some reports whether pred holds for any value. It stops pulling at the
// first value for which pred holds.
func Some[T any](src Source[T], pred Func[T, bool]) *Result[bool] {
	return decide("some", src, pred, true)
}

// decide pulls until pred returns stopOn, which then becomes the answer.
func decide[T any](op string, src Source[T], pred Func[T, bool], stopOn bool) *Result[bool] {
	if src == nil {
		return failedResult[bool](op, errors.InvalidSource(op, src))
	}
	if !pred.valid() {
		return failedResult[bool](op, errors.InvalidArgument(op, "pred", "must not be nil"))
	}
	return newResult(op, src.Kind().Join(pred.Kind()), func(ctx context.Context) (bool, error) {
		defer src.Close()
		for {
			val, ok, err := src.Next(ctx)
			if err != nil {
				return false, err
			}
			if !ok {
				return !stopOn, nil
			}
			hit, err := pred.call(ctx, val)
			if err != nil {
				return false, err
			}
			if hit == stopOn {
				return stopOn, nil
			}
		}
	})
}

// Find returns the first value satisfying pred, stopping pulls there.
func Find[T any](src Source[T], pred Func[T, bool]) *Result[Found[T]] {
	if src == nil {
		return failedResult[Found[T]]("find", errors.InvalidSource("find", src))
	}
	if !pred.valid() {
		return failedResult[Found[T]]("find", errors.InvalidArgument("find", "pred", "must not be nil"))
	}
	return newResult("find", src.Kind().Join(pred.Kind()), func(ctx context.Context) (Found[T], error) {
		defer src.Close()
		for {
			val, ok, err := src.Next(ctx)
			if err != nil || !ok {
				return Found[T]{}, err
			}
			hit, err := pred.call(ctx, val)
			if err != nil {
				return Found[T]{}, err
			}
			if hit {
				return Found[T]{Value: val, OK: true}, nil
			}
		}
	})
}

// Count exhausts src and returns the number of values.
func Count[T any](src Source[T]) *Result[int] {
	if src == nil {
		return failedResult[int]("count", errors.InvalidSource("count", src))
	}
	return newResult("count", src.Kind(), func(ctx context.Context) (int, error) {
		defer src.Close()
		n := 0
		for {
			_, ok, err := src.Next(ctx)
			if err != nil || !ok {
				return n, err
			}
			n++
		}
	})
}

// ForEach pulls all values and calls fn for each.
func ForEach[T any](ctx context.Context, src Source[T], fn func(context.Context, T) error) error {
	return Drain(src, fn).Run(ctx)
}

// Runnable is a fully-configured traversal ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run executes the traversal until completion, failure or ctx ending.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](src Source[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			if src == nil {
				return errors.InvalidSource("drain", src)
			}
			if sink == nil {
				return errors.InvalidArgument("drain", "sink", "must not be nil")
			}
			defer src.Close()
			for {
				val, ok, err := src.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := sink(ctx, val); err != nil {
					return err
				}
			}
		},
	}
}

func failedResult[T any](op string, err error) *Result[T] {
	return newResult(op, KindSync, func(context.Context) (T, error) {
		var zero T
		return zero, err
	})
}

type scanIter[T, R any] struct {
	source Source[T]
	acc    R
	fn     Func2[R, T, R]
	kind   Kind
}

func (it *scanIter[T, R]) Kind() Kind { return it.kind }

func (it *scanIter[T, R]) Next(ctx context.Context) (R, bool, error) {
	var zero R
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	acc, err := it.fn.call(ctx, it.acc, val)
	if err != nil {
		return zero, false, err
	}
	it.acc = acc
	return acc, true, nil
}

func (it *scanIter[T, R]) Close() error { return it.source.Close() }
