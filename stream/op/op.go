package op

import (
	"github.com/kbukum/lazyseq/stream"
)

// Map is the curried form of stream.Map.
func Map[I, O any](fn stream.Func[I, O]) stream.Op[I, O] {
	return func(src stream.Source[I]) stream.Source[O] { return stream.Map(src, fn) }
}

// Filter is the curried form of stream.Filter.
func Filter[T any](pred stream.Func[T, bool]) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.Filter(src, pred) }
}

// FlatMap is the curried form of stream.FlatMap.
func FlatMap[I, O any](fn stream.Func[I, stream.Source[O]]) stream.Op[I, O] {
	return func(src stream.Source[I]) stream.Source[O] { return stream.FlatMap(src, fn) }
}

// Flatten is the curried form of stream.Flatten.
func Flatten[T any]() stream.Op[stream.Source[T], T] {
	return stream.Flatten[T]
}

// FlattenSlices is the curried form of stream.FlattenSlices.
func FlattenSlices[T any]() stream.Op[[]T, T] {
	return stream.FlattenSlices[T]
}

// Tap is the curried form of stream.Tap.
func Tap[T any](fn func(T) error) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.Tap(src, fn) }
}

// Await is the curried form of stream.Await.
func Await[T any]() stream.Op[stream.Future[T], T] {
	return stream.Await[T]
}

// Promote is the curried form of stream.Promote.
func Promote[T any]() stream.Op[T, T] {
	return stream.Promote[T]
}

// Take is the curried form of stream.Take.
func Take[T any](n int) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.Take(src, n) }
}

// Drop is the curried form of stream.Drop.
func Drop[T any](n int) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.Drop(src, n) }
}

// TakeWhile is the curried form of stream.TakeWhile.
func TakeWhile[T any](pred stream.Func[T, bool]) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.TakeWhile(src, pred) }
}

// DropWhile is the curried form of stream.DropWhile.
func DropWhile[T any](pred stream.Func[T, bool]) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.DropWhile(src, pred) }
}

// Zip is the curried form of stream.Zip. The piped source supplies First.
func Zip[A, B any](other stream.Source[B]) stream.Op[A, stream.Pair[A, B]] {
	return func(src stream.Source[A]) stream.Source[stream.Pair[A, B]] { return stream.Zip(src, other) }
}

// ZipWith is the curried form of stream.ZipWith.
func ZipWith[A, B, O any](other stream.Source[B], fn stream.Func2[A, B, O]) stream.Op[A, O] {
	return func(src stream.Source[A]) stream.Source[O] { return stream.ZipWith(src, other, fn) }
}

// Concat is the curried form of stream.Concat.
func Concat[T any](other stream.Source[T]) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.Concat(src, other) }
}

// Append is the curried form of stream.Append.
func Append[T any](v T) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.Append(src, v) }
}

// AppendFuture is the curried form of stream.AppendFuture.
func AppendFuture[T any](f stream.Future[T]) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.AppendFuture(src, f) }
}

// Prepend is the curried form of stream.Prepend.
func Prepend[T any](v T) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.Prepend(src, v) }
}

// PrependFuture is the curried form of stream.PrependFuture.
func PrependFuture[T any](f stream.Future[T]) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] { return stream.PrependFuture(src, f) }
}

// Chunk is the curried form of stream.Chunk.
func Chunk[T any](size int) stream.Op[T, []T] {
	return func(src stream.Source[T]) stream.Source[[]T] { return stream.Chunk(src, size) }
}

// Scan is the curried form of stream.Scan.
func Scan[T, R any](init R, fn stream.Func2[R, T, R]) stream.Op[T, R] {
	return func(src stream.Source[T]) stream.Source[R] { return stream.Scan(src, init, fn) }
}
