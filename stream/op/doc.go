// Package op holds the source-less forms of the stream operators. Each
// function takes every argument except the source and returns a stream.Op or
// stream.Terminal to apply later, so same-typed stages compose with
// stream.Chain:
//
//	firstEvens := stream.Chain(
//	    op.Filter(stream.Pred(isEven)),
//	    op.Take[int](3),
//	)
//	out, err := op.ToSlice[int]()(firstEvens(src)).Await(ctx)
//
// The direct forms in package stream behave identically.
package op
