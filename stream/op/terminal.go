package op

import "github.com/kbukum/lazyseq/stream"

// ToSlice is the curried form of stream.ToSlice.
func ToSlice[T any]() stream.Terminal[T, []T] {
	return stream.ToSlice[T]
}

// Reduce is the curried form of stream.Reduce.
func Reduce[T, R any](init R, fn stream.Func2[R, T, R]) stream.Terminal[T, R] {
	return func(src stream.Source[T]) *stream.Result[R] { return stream.Reduce(src, init, fn) }
}

// Every is the curried form of stream.Every.
func Every[T any](pred stream.Func[T, bool]) stream.Terminal[T, bool] {
	return func(src stream.Source[T]) *stream.Result[bool] { return stream.Every(src, pred) }
}

// Some is the curried form of stream.Some.
func Some[T any](pred stream.Func[T, bool]) stream.Terminal[T, bool] {
	return func(src stream.Source[T]) *stream.Result[bool] { return stream.Some(src, pred) }
}

// Find is the curried form of stream.Find.
func Find[T any](pred stream.Func[T, bool]) stream.Terminal[T, stream.Found[T]] {
	return func(src stream.Source[T]) *stream.Result[stream.Found[T]] { return stream.Find(src, pred) }
}

// Count is the curried form of stream.Count.
func Count[T any]() stream.Terminal[T, int] {
	return stream.Count[T]
}

// Run applies ops in order and hands the result to terminal.
//
//	sum := op.Run(src, op.Reduce(0, add), op.Filter(even), op.Take[int](10))
func Run[T, R any](src stream.Source[T], terminal stream.Terminal[T, R], ops ...stream.Op[T, T]) *stream.Result[R] {
	return terminal(stream.Chain(ops...)(src))
}
