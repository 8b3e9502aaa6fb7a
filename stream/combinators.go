package stream

import (
	"context"
	"fmt"
)

// Pair holds one value from each side of a Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// String formats the pair as (first, second).
func (p Pair[A, B]) String() string { return fmt.Sprintf("(%v, %v)", p.First, p.Second) }

// Zip pairs each value of src with the value of other at the same position.
// It stops as soon as either side is exhausted.
func Zip[A, B any](src Source[A], other Source[B]) Source[Pair[A, B]] {
	return zipWith("zip", src, other, Fn2(func(a A, b B) Pair[A, B] { return Pair[A, B]{First: a, Second: b} }))
}

// ZipWith combines each value of src with the value of other at the same
// position using fn. It stops as soon as either side is exhausted.
func ZipWith[A, B, O any](src Source[A], other Source[B], fn Func2[A, B, O]) Source[O] {
	return zipWith("zipWith", src, other, fn)
}

func zipWith[A, B, O any](op string, src Source[A], other Source[B], fn Func2[A, B, O]) Source[O] {
	if src == nil {
		return invalid[O](op, src)
	}
	if other == nil {
		return invalid[O](op, other)
	}
	if !fn.valid() {
		return invalidArg[O](src.Kind().Join(other.Kind()), op, "fn")
	}
	left, right, kind := unify(src, other)
	return &zipIter[A, B, O]{left: left, right: right, fn: fn, kind: kind.Join(fn.Kind())}
}

// Concat yields every value of src, then every value of other. other is not
// pulled until src is exhausted.
func Concat[T any](src, other Source[T]) Source[T] {
	if src == nil {
		return invalid[T]("concat", src)
	}
	if other == nil {
		return invalid[T]("concat", other)
	}
	first, second, kind := unify(src, other)
	return &concatIter[T]{first: first, second: second, kind: kind}
}

// Append yields the values of src followed by v.
func Append[T any](src Source[T], v T) Source[T] {
	return AppendFuture(src, Resolved(v))
}

// AppendFuture yields the values of src followed by the value of f. f is
// awaited only once src is exhausted. Unless f is already settled the output
// is async.
func AppendFuture[T any](src Source[T], f Future[T]) Source[T] {
	if src == nil {
		return invalid[T]("append", src)
	}
	if f == nil {
		return invalidArg[T](src.Kind(), "append", "value")
	}
	return &appendIter[T]{source: src, value: f, kind: src.Kind().Join(futureKind(f))}
}

// Prepend yields v followed by the values of src.
func Prepend[T any](src Source[T], v T) Source[T] {
	return PrependFuture(src, Resolved(v))
}

// PrependFuture yields the value of f followed by the values of src. f is
// awaited on the first pull. Unless f is already settled the output is async.
func PrependFuture[T any](src Source[T], f Future[T]) Source[T] {
	if src == nil {
		return invalid[T]("prepend", src)
	}
	if f == nil {
		return invalidArg[T](src.Kind(), "prepend", "value")
	}
	return &prependIter[T]{source: src, value: f, kind: src.Kind().Join(futureKind(f))}
}

// Chunk groups values into slices of size values. The last slice may be
// shorter; an empty source yields nothing. size <= 0 yields nothing and never
// pulls from src.
func Chunk[T any](src Source[T], size int) Source[[]T] {
	if src == nil {
		return invalid[[]T]("chunk", src)
	}
	return &chunkIter[T]{source: src, size: size}
}

// futureKind is sync only for already-settled values: those wrapped by
// Resolved and results computed eagerly.
func futureKind[T any](f Future[T]) Kind {
	switch v := f.(type) {
	case resolvedFuture[T]:
		return KindSync
	case *Result[T]:
		return v.Kind()
	}
	return KindAsync
}

// --- Iterator implementations ---

type zipIter[A, B, O any] struct {
	left  Source[A]
	right Source[B]
	fn    Func2[A, B, O]
	kind  Kind
	done  bool
}

func (it *zipIter[A, B, O]) Kind() Kind { return it.kind }

func (it *zipIter[A, B, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	var zero O
	if it.done {
		return zero, false, nil
	}
	a, ok, err := it.left.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	b, ok, err := it.right.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	out, err := it.fn.call(ctx, a, b)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func (it *zipIter[A, B, O]) Close() error {
	errL := it.left.Close()
	errR := it.right.Close()
	if errL != nil {
		return errL
	}
	return errR
}

type concatIter[T any] struct {
	first    Source[T]
	second   Source[T]
	kind     Kind
	onSecond bool
}

func (it *concatIter[T]) Kind() Kind { return it.kind }

func (it *concatIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if !it.onSecond {
		val, ok, err := it.first.Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.onSecond = true
	}
	return it.second.Next(ctx)
}

func (it *concatIter[T]) Close() error {
	errFirst := it.first.Close()
	errSecond := it.second.Close()
	if errFirst != nil {
		return errFirst
	}
	return errSecond
}

type appendIter[T any] struct {
	source    Source[T]
	value     Future[T]
	kind      Kind
	exhausted bool
	emitted   bool
}

func (it *appendIter[T]) Kind() Kind { return it.kind }

func (it *appendIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if !it.exhausted {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return val, true, nil
		}
		it.exhausted = true
	}
	if it.emitted {
		return zero, false, nil
	}
	it.emitted = true
	val, err := it.value.Await(ctx)
	if err != nil {
		return zero, false, err
	}
	return val, true, nil
}

func (it *appendIter[T]) Close() error { return it.source.Close() }

type prependIter[T any] struct {
	source  Source[T]
	value   Future[T]
	kind    Kind
	emitted bool
}

func (it *prependIter[T]) Kind() Kind { return it.kind }

func (it *prependIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if !it.emitted {
		it.emitted = true
		val, err := it.value.Await(ctx)
		if err != nil {
			var zero T
			return zero, false, err
		}
		return val, true, nil
	}
	return it.source.Next(ctx)
}

func (it *prependIter[T]) Close() error { return it.source.Close() }

type chunkIter[T any] struct {
	source Source[T]
	size   int
	done   bool
}

func (it *chunkIter[T]) Kind() Kind { return it.source.Kind().Join(KindSync) }

func (it *chunkIter[T]) Next(ctx context.Context) (result []T, ok bool, err error) {
	if it.done || it.size <= 0 {
		return nil, false, nil
	}
	chunk := make([]T, 0, min(it.size, 64))
	for len(chunk) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			break
		}
		chunk = append(chunk, val)
	}
	if len(chunk) == 0 {
		return nil, false, nil
	}
	return chunk, true, nil
}

func (it *chunkIter[T]) Close() error { return it.source.Close() }
