package stream

import (
	"context"

	"github.com/kbukum/lazyseq/errors"
)

// Op is the curried form of a non-terminal operator: a reusable function
// from one source to another.
type Op[I, O any] func(Source[I]) Source[O]

// Chain composes same-typed operators. Operators apply in order: the first
// receives the source, the last produces the output.
//
// Chain(a, b, c)(src) is equivalent to c(b(a(src))).
func Chain[T any](ops ...Op[T, T]) Op[T, T] {
	return func(src Source[T]) Source[T] {
		for _, op := range ops {
			src = op(src)
		}
		return src
	}
}

// Map transforms each value using fn. Pending values are not resolved; use
// Await on a Source[Future[T]] to wait for them.
func Map[I, O any](src Source[I], fn Func[I, O]) Source[O] {
	if src == nil {
		return invalid[O]("map", src)
	}
	if !fn.valid() {
		return invalidArg[O](src.Kind(), "map", "fn")
	}
	return &mapIter[I, O]{source: src, fn: fn, kind: src.Kind().Join(fn.Kind())}
}

// Filter keeps only values that satisfy pred. Pending values are passed to
// pred as they are; use Await first to filter on resolved values.
func Filter[T any](src Source[T], pred Func[T, bool]) Source[T] {
	if src == nil {
		return invalid[T]("filter", src)
	}
	if !pred.valid() {
		return invalidArg[T](src.Kind(), "filter", "pred")
	}
	return &filterIter[T]{source: src, pred: pred, kind: src.Kind().Join(pred.Kind())}
}

// FlatMap transforms each value into an inner source and yields every inner
// value before pulling the next outer value. In a sync pipeline the inner
// sources must be sync too.
func FlatMap[I, O any](src Source[I], fn Func[I, Source[O]]) Source[O] {
	if src == nil {
		return invalid[O]("flatMap", src)
	}
	if !fn.valid() {
		return invalidArg[O](src.Kind(), "flatMap", "fn")
	}
	return &flatMapIter[I, O]{op: "flatMap", source: src, fn: fn, kind: src.Kind().Join(fn.Kind())}
}

// Flatten yields the values of each inner source in order.
func Flatten[T any](src Source[Source[T]]) Source[T] {
	if src == nil {
		return invalid[T]("flatten", src)
	}
	return &flatMapIter[Source[T], T]{
		op:     "flatten",
		source: src,
		fn:     Fn(func(s Source[T]) Source[T] { return s }),
		kind:   src.Kind().Join(KindSync),
	}
}

// FlattenSlices yields the elements of each slice in order.
func FlattenSlices[T any](src Source[[]T]) Source[T] {
	if src == nil {
		return invalid[T]("flattenSlices", src)
	}
	return &flatMapIter[[]T, T]{
		op:     "flattenSlices",
		source: src,
		fn:     Fn(FromSlice[T]),
		kind:   src.Kind().Join(KindSync),
	}
}

// Tap calls fn as a side-effect for each value, then passes the value through
// unchanged.
func Tap[T any](src Source[T], fn func(T) error) Source[T] {
	if src == nil {
		return invalid[T]("tap", src)
	}
	if fn == nil {
		return invalidArg[T](src.Kind(), "tap", "fn")
	}
	return &tapIter[T]{source: src, fn: fn}
}

// Await resolves sources of pending values, one element per pull.
func Await[T any](src Source[Future[T]]) Source[T] {
	if src == nil {
		return invalid[T]("await", src)
	}
	return &mapIter[Future[T], T]{
		source: src,
		fn: AsyncFn(func(ctx context.Context, f Future[T]) (T, error) {
			if f == nil {
				var zero T
				return zero, errors.InvalidArgument("await", "element", "nil future")
			}
			return f.Await(ctx)
		}),
		kind: KindAsync,
	}
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	source Source[I]
	fn     Func[I, O]
	kind   Kind
	done   bool
}

func (it *mapIter[I, O]) Kind() Kind { return it.kind }

func (it *mapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	var zero O
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	out, err := it.fn.call(ctx, val)
	if err != nil {
		it.done = true
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Source[T]
	pred   Func[T, bool]
	kind   Kind
	done   bool
}

func (it *filterIter[T]) Kind() Kind { return it.kind }

func (it *filterIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			it.done = true
			return zero, false, err
		}
		keep, err := it.pred.call(ctx, val)
		if err != nil {
			it.done = true
			return zero, false, err
		}
		if keep {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type flatMapIter[I, O any] struct {
	op      string
	source  Source[I]
	fn      Func[I, Source[O]]
	kind    Kind
	current Source[O]
	done    bool
}

func (it *flatMapIter[I, O]) Kind() Kind { return it.kind }

func (it *flatMapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	var zero O
	if it.done {
		return zero, false, nil
	}
	result, ok, err = it.advance(ctx)
	if err != nil || !ok {
		it.done = true
	}
	return result, ok, err
}

func (it *flatMapIter[I, O]) advance(ctx context.Context) (O, bool, error) {
	var zero O
	for {
		if it.current != nil {
			val, ok, err := it.current.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if ok {
				return val, true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		in, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		inner, err := it.fn.call(ctx, in)
		if err != nil {
			return zero, false, err
		}
		if inner == nil {
			return zero, false, errors.InvalidSource(it.op, inner)
		}
		if it.kind.IsSync() && !inner.Kind().IsSync() {
			_ = inner.Close()
			return zero, false, errors.IncompatibleKind(it.op, KindSync.String(), inner.Kind().String())
		}
		it.current = inner
	}
}

func (it *flatMapIter[I, O]) Close() error {
	if it.current != nil {
		_ = it.current.Close()
		it.current = nil
	}
	return it.source.Close()
}

type tapIter[T any] struct {
	source Source[T]
	fn     func(T) error
	done   bool
}

func (it *tapIter[T]) Kind() Kind { return it.source.Kind().Join(KindSync) }

func (it *tapIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	if err := it.fn(val); err != nil {
		it.done = true
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }
