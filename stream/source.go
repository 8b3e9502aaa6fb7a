package stream

import (
	"context"
	"iter"

	"github.com/kbukum/lazyseq/errors"
)

// Source is a stateful, single-pass producer of ordered values. Values are
// pulled on demand; once produced a value is not produced again, so separate
// traversals need separate sources. The consumer should Close a source it
// stops pulling from.
type Source[T any] interface {
	// Kind reports whether Next may block.
	Kind() Kind
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases the source and its upstream.
	Close() error
}

// AsyncIterator is the pull contract of producers that may block.
type AsyncIterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// SyncPuller is the pull contract of producers that never block.
type SyncPuller[T any] interface {
	Next() (T, bool)
}

// --- Sync constructors ---

// FromSlice creates a sync source over items. The slice is not copied.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: items}
}

// Of creates a sync source over its arguments.
func Of[T any](items ...T) Source[T] { return FromSlice(items) }

// Empty returns an exhausted sync source.
func Empty[T any]() Source[T] { return FromSlice[T](nil) }

// FromSeq creates a sync source over a range-over-func sequence. The sequence
// is started on the first pull and stopped by Close.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	return &seqSource[T]{seq: seq}
}

// FromPuller creates a sync source over a SyncPuller.
func FromPuller[T any](p SyncPuller[T]) Source[T] {
	if p == nil {
		return invalid[T]("fromPuller", p)
	}
	return Generate(func() (T, bool, error) {
		v, ok := p.Next()
		return v, ok, nil
	})
}

// Generate creates a sync source calling fn for every pull until it reports
// exhaustion or fails. fn is not called again afterwards.
func Generate[T any](fn func() (T, bool, error)) Source[T] {
	if fn == nil {
		return invalidArg[T](KindSync, "generate", "fn")
	}
	return &genSource[T]{kind: KindSync, next: func(context.Context) (T, bool, error) { return fn() }}
}

// Iterate creates an infinite sync source: seed, fn(seed), fn(fn(seed)), ...
func Iterate[T any](seed T, fn func(T) T) Source[T] {
	if fn == nil {
		return invalidArg[T](KindSync, "iterate", "fn")
	}
	cur, started := seed, false
	return Generate(func() (T, bool, error) {
		if started {
			cur = fn(cur)
		}
		started = true
		return cur, true, nil
	})
}

// Repeat creates an infinite sync source yielding v.
func Repeat[T any](v T) Source[T] {
	return Generate(func() (T, bool, error) { return v, true, nil })
}

// Range creates a sync source over the integers in [start, end).
func Range(start, end int) Source[int] {
	n := start
	return Generate(func() (int, bool, error) {
		if n >= end {
			return 0, false, nil
		}
		n++
		return n - 1, true, nil
	})
}

// Fail creates a sync source whose every pull fails with err.
func Fail[T any](err error) Source[T] {
	return &failedSource[T]{kind: KindSync, err: err}
}

// --- Async constructors ---

// FromIterator creates an async source over an AsyncIterator.
func FromIterator[T any](it AsyncIterator[T]) Source[T] {
	if it == nil {
		return invalid[T]("fromIterator", it)
	}
	return &iteratorSource[T]{it: it}
}

// FromChan creates an async source receiving from ch until it is closed.
func FromChan[T any](ch <-chan T) Source[T] {
	if ch == nil {
		return invalid[T]("fromChan", ch)
	}
	return GenerateAsync(func(ctx context.Context) (T, bool, error) {
		select {
		case v, open := <-ch:
			return v, open, nil
		case <-ctx.Done():
			var zero T
			return zero, false, ctx.Err()
		}
	})
}

// GenerateAsync creates an async source calling fn for every pull until it
// reports exhaustion or fails.
func GenerateAsync[T any](fn func(ctx context.Context) (T, bool, error)) Source[T] {
	if fn == nil {
		return invalidArg[T](KindAsync, "generateAsync", "fn")
	}
	return &genSource[T]{kind: KindAsync, next: fn}
}

// --- Deferred constructors ---

// Defer creates a deferred source that awaits f on its first pull and then
// pulls from the source it resolved to.
func Defer[T any](f Future[Source[T]]) Source[T] {
	if f == nil {
		return invalid[T]("defer", f)
	}
	return &deferredSource[T]{op: "defer", future: f}
}

// DeferSlice creates a deferred source over a pending slice.
func DeferSlice[T any](f Future[[]T]) Source[T] {
	if f == nil {
		return invalid[T]("deferSlice", f)
	}
	return Defer(Then(f, func(items []T) (Source[T], error) {
		return FromSlice(items), nil
	}))
}

// --- Implementations ---

type sliceSource[T any] struct {
	items []T
	index int
}

func (s *sliceSource[T]) Kind() Kind { return KindSync }

func (s *sliceSource[T]) Next(_ context.Context) (T, bool, error) {
	if s.index >= len(s.items) {
		var zero T
		return zero, false, nil
	}
	val := s.items[s.index]
	s.index++
	return val, true, nil
}

func (s *sliceSource[T]) Close() error {
	s.index = len(s.items)
	return nil
}

type seqSource[T any] struct {
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
	done bool
}

func (s *seqSource[T]) Kind() Kind { return KindSync }

func (s *seqSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if s.done {
		return zero, false, nil
	}
	if s.seq == nil {
		s.done = true
		return zero, false, errors.InvalidSource("fromSeq", s.seq)
	}
	if s.next == nil {
		s.next, s.stop = iter.Pull(s.seq)
	}
	v, ok := s.next()
	if !ok {
		s.done = true
		s.stop()
	}
	return v, ok, nil
}

func (s *seqSource[T]) Close() error {
	s.done = true
	if s.stop != nil {
		s.stop()
	}
	return nil
}

type genSource[T any] struct {
	kind Kind
	next func(context.Context) (T, bool, error)
	done bool
}

func (s *genSource[T]) Kind() Kind { return s.kind }

func (s *genSource[T]) Next(ctx context.Context) (T, bool, error) {
	if s.done {
		var zero T
		return zero, false, nil
	}
	v, ok, err := s.next(ctx)
	if err != nil || !ok {
		s.done = true
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

func (s *genSource[T]) Close() error {
	s.done = true
	return nil
}

type iteratorSource[T any] struct {
	it AsyncIterator[T]
}

func (s *iteratorSource[T]) Kind() Kind { return KindAsync }

func (s *iteratorSource[T]) Next(ctx context.Context) (T, bool, error) { return s.it.Next(ctx) }

func (s *iteratorSource[T]) Close() error { return s.it.Close() }

type deferredSource[T any] struct {
	op     string
	future Future[Source[T]]
	inner  Source[T]
	closed bool
}

func (s *deferredSource[T]) Kind() Kind { return KindDeferred }

func (s *deferredSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if s.closed {
		return zero, false, nil
	}
	if s.inner == nil {
		inner, err := s.future.Await(ctx)
		if err != nil {
			return zero, false, err
		}
		if inner == nil {
			return zero, false, errors.InvalidSource(s.op, inner)
		}
		s.inner = inner
	}
	return s.inner.Next(ctx)
}

func (s *deferredSource[T]) Close() error {
	s.closed = true
	if s.inner != nil {
		return s.inner.Close()
	}
	return nil
}

// failedSource fails every pull with err. It stands in for operators given a
// nil source or an unusable argument, so the error surfaces at the first pull
// on the same sync-or-pending boundary as the pipeline.
type failedSource[T any] struct {
	kind Kind
	err  error
}

func (s *failedSource[T]) Kind() Kind { return s.kind }

func (s *failedSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, s.err
}

func (s *failedSource[T]) Close() error { return nil }

func invalid[T any](op string, value any) Source[T] {
	return &failedSource[T]{kind: KindSync, err: errors.InvalidSource(op, value)}
}

func invalidArg[T any](kind Kind, op, arg string) Source[T] {
	return &failedSource[T]{kind: kind.Join(KindSync), err: errors.InvalidArgument(op, arg, "must not be nil")}
}
