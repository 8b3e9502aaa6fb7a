package stream

import (
	"context"
	"iter"

	"github.com/kbukum/lazyseq/errors"
)

// All adapts src for range-over-func. A pull error is yielded once with the
// zero value and ends the loop. Breaking out of the loop stops pulling and
// closes src.
//
//	for v, err := range stream.All(ctx, src) {
//	    if err != nil {
//	        return err
//	    }
//	    use(v)
//	}
func All[T any](ctx context.Context, src Source[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if src == nil {
			var zero T
			yield(zero, errors.InvalidSource("all", src))
			return
		}
		defer src.Close()
		for {
			val, ok, err := src.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(val, nil) {
				return
			}
		}
	}
}

// Values adapts a sync source to iter.Seq, dropping any pull error. Use All
// when errors matter.
func Values[T any](src Source[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, err := range All(context.Background(), src) {
			if err != nil || !yield(v) {
				return
			}
		}
	}
}
