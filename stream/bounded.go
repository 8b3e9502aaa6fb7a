package stream

import "context"

// Take yields at most n values. After the n-th value it never pulls from src
// again; n <= 0 never pulls at all.
func Take[T any](src Source[T], n int) Source[T] {
	if src == nil {
		return invalid[T]("take", src)
	}
	return &takeIter[T]{source: src, n: n}
}

// Drop discards the first n values and yields the rest. n <= 0 passes every
// value through.
func Drop[T any](src Source[T], n int) Source[T] {
	if src == nil {
		return invalid[T]("drop", src)
	}
	return &dropIter[T]{source: src, n: n}
}

// TakeWhile yields values while pred holds. The first value failing pred is
// discarded and src is never pulled again.
func TakeWhile[T any](src Source[T], pred Func[T, bool]) Source[T] {
	if src == nil {
		return invalid[T]("takeWhile", src)
	}
	if !pred.valid() {
		return invalidArg[T](src.Kind(), "takeWhile", "pred")
	}
	return &takeWhileIter[T]{source: src, pred: pred, kind: src.Kind().Join(pred.Kind())}
}

// DropWhile skips values while pred holds. From the first value failing pred
// on, every value is yielded and pred is not called again.
func DropWhile[T any](src Source[T], pred Func[T, bool]) Source[T] {
	if src == nil {
		return invalid[T]("dropWhile", src)
	}
	if !pred.valid() {
		return invalidArg[T](src.Kind(), "dropWhile", "pred")
	}
	return &dropWhileIter[T]{source: src, pred: pred, kind: src.Kind().Join(pred.Kind())}
}

type takeIter[T any] struct {
	source Source[T]
	n      int
	taken  int
}

func (it *takeIter[T]) Kind() Kind { return it.source.Kind().Join(KindSync) }

func (it *takeIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.taken >= it.n {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.taken = it.n
		return zero, false, err
	}
	it.taken++
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type dropIter[T any] struct {
	source  Source[T]
	n       int
	dropped bool
}

func (it *dropIter[T]) Kind() Kind { return it.source.Kind().Join(KindSync) }

func (it *dropIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if !it.dropped {
		it.dropped = true
		for i := 0; i < it.n; i++ {
			_, ok, err := it.source.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
		}
	}
	return it.source.Next(ctx)
}

func (it *dropIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Source[T]
	pred   Func[T, bool]
	kind   Kind
	done   bool
}

func (it *takeWhileIter[T]) Kind() Kind { return it.kind }

func (it *takeWhileIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
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
	if !keep {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type dropWhileIter[T any] struct {
	source   Source[T]
	pred     Func[T, bool]
	kind     Kind
	yielding bool
	done     bool
}

func (it *dropWhileIter[T]) Kind() Kind { return it.kind }

func (it *dropWhileIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	if it.yielding {
		result, ok, err = it.source.Next(ctx)
		if err != nil || !ok {
			it.done = true
			return zero, false, err
		}
		return result, true, nil
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			it.done = true
			return zero, false, err
		}
		skip, err := it.pred.call(ctx, val)
		if err != nil {
			it.done = true
			return zero, false, err
		}
		if !skip {
			it.yielding = true
			return val, true, nil
		}
	}
}

func (it *dropWhileIter[T]) Close() error { return it.source.Close() }
