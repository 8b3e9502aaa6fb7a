// Package stream provides lazy, pull-based sequence operators that work the
// same way over sync and async producers.
//
// Nothing runs until a value is pulled. Each operator pulls from its upstream
// only as far as its consumer demands, so Take, TakeWhile, Every, Some and
// Find stop pulling the moment their answer is known, even over infinite
// sources.
//
// # Source kinds
//
// Every Source reports a Kind:
//
//   - KindSync: Next never blocks (slices, iter.Seq, generators)
//   - KindAsync: Next may block (channels, AsyncIterator, async functions)
//   - KindDeferred: the source itself is produced by a Future and resolved
//     on the first pull
//
// An operator's output is sync only when all of its inputs and functions are
// sync. Anything touched by an async or deferred input becomes async; see
// Kind.Join. Terminals follow the same rule: a Result over sync inputs is
// computed when the terminal is called and Value returns it directly, while
// any other Result is pending until Await.
//
// Functions passed to operators are wrapped with Fn, TryFn, AsyncFn or
// FutureFn so their kind takes part in the rule:
//
//	src := stream.Of(1, 2, 3, 4, 5)
//	evens := stream.Filter(src, stream.Pred(func(n int) bool { return n%2 == 0 }))
//	sum := stream.Reduce(evens, 0, stream.Fn2(func(acc, n int) int { return acc + n }))
//	total, _ := sum.Value() // 6, computed eagerly
//
// Any value can be turned into a Source with From, which classifies slices,
// channels, iterators, sequences and futures:
//
//	src, err := stream.From[int](ch) // KindAsync
//
// Package stream/op holds curried forms of every operator for use with
// Chain.
//
// # Errors
//
// Errors returned by caller functions reach the consumer unchanged at the
// pull that triggered them. Engine errors are *errors.AppError values that
// match ErrInvalidSource, ErrIncompatibleKind, ErrInvalidArgument and
// ErrPendingResult under errors.Is. Operators report exhaustion on every pull
// after the one that failed; caller-supplied sources need not.
package stream
