package testutil

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/lazyseq/stream"
)

// Counter wraps a source and records how it is driven.
type Counter[T any] struct {
	source stream.Source[T]
	pulls  atomic.Int64
	closes atomic.Int64
}

// Count instruments src.
func Count[T any](src stream.Source[T]) *Counter[T] {
	return &Counter[T]{source: src}
}

func (c *Counter[T]) Kind() stream.Kind { return c.source.Kind() }

func (c *Counter[T]) Next(ctx context.Context) (T, bool, error) {
	c.pulls.Add(1)
	return c.source.Next(ctx)
}

func (c *Counter[T]) Close() error {
	c.closes.Add(1)
	return c.source.Close()
}

// Pulls returns the number of Next calls so far.
func (c *Counter[T]) Pulls() int { return int(c.pulls.Load()) }

// Closed reports whether Close was called at least once.
func (c *Counter[T]) Closed() bool { return c.closes.Load() > 0 }

// Naturals is an infinite sync source of 0, 1, 2, ...
func Naturals() stream.Source[int] {
	return stream.Iterate(0, func(n int) int { return n + 1 })
}

// AsyncNaturals is an infinite async source of 0, 1, 2, ...
func AsyncNaturals() stream.Source[int] {
	n := 0
	return stream.GenerateAsync(func(ctx context.Context) (int, bool, error) {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		v := n
		n++
		return v, true, nil
	})
}

// AsyncSlice is an async source over items. Each pull honors ctx.
func AsyncSlice[T any](items ...T) stream.Source[T] {
	i := 0
	return stream.GenerateAsync(func(ctx context.Context) (T, bool, error) {
		var zero T
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}
		if i >= len(items) {
			return zero, false, nil
		}
		v := items[i]
		i++
		return v, true, nil
	})
}

// DeferredSlice is a deferred source resolving to items on first pull.
func DeferredSlice[T any](items ...T) stream.Source[T] {
	return stream.DeferSlice(stream.Resolved(items))
}

// Failing yields items and then fails with err.
func Failing[T any](err error, items ...T) stream.Source[T] {
	i := 0
	return stream.Generate(func() (T, bool, error) {
		var zero T
		if i >= len(items) {
			return zero, false, err
		}
		v := items[i]
		i++
		return v, true, nil
	})
}

// KindCase is one rendition of a fixed data set.
type KindCase[T any] struct {
	Name   string
	Kind   stream.Kind
	Source func() stream.Source[T]
}

// Kinds returns the same items as a sync, an async and a deferred source.
// Source builds a fresh source on each call.
func Kinds[T any](items []T) []KindCase[T] {
	return []KindCase[T]{
		{Name: "sync", Kind: stream.KindSync, Source: func() stream.Source[T] { return stream.FromSlice(items) }},
		{Name: "async", Kind: stream.KindAsync, Source: func() stream.Source[T] { return AsyncSlice(items...) }},
		{Name: "deferred", Kind: stream.KindDeferred, Source: func() stream.Source[T] { return DeferredSlice(items...) }},
	}
}
