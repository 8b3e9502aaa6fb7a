package stream

import "context"

// Promote returns an async view of src. Deferred sources resolve on the first
// pull, sync pulls become trivially immediate suspension points and async
// sources are returned unchanged. Nothing is pulled until the view is.
func Promote[T any](src Source[T]) Source[T] {
	if src == nil {
		return invalid[T]("promote", src)
	}
	if src.Kind() == KindAsync {
		return src
	}
	return &promoted[T]{source: src}
}

type promoted[T any] struct {
	source Source[T]
}

func (p *promoted[T]) Kind() Kind { return KindAsync }

func (p *promoted[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	return p.source.Next(ctx)
}

func (p *promoted[T]) Close() error { return p.source.Close() }

// unify promotes both operands when either is not sync, so that two-source
// combinators see a single family.
func unify[A, B any](a Source[A], b Source[B]) (Source[A], Source[B], Kind) {
	kind := a.Kind().Join(b.Kind())
	if kind.IsSync() {
		return a, b, kind
	}
	return Promote(a), Promote(b), kind
}
