// Package testutil provides instrumented sources and assertion helpers for
// testing code built on package stream.
//
// Sources record how they were driven so tests can check laziness and early
// termination, not just output:
//
//	src := testutil.Count(testutil.Naturals())
//	got := testutil.MustCollect(t, stream.Take[int](src, 3))
//	// got == [0 1 2], src.Pulls() == 3
//
// Async and deferred variants wrap the same data so a test can run one
// scenario across every source kind:
//
//	for _, tc := range testutil.Kinds([]int{1, 2, 3}) {
//	    t.Run(tc.Name, func(t *testing.T) { ... tc.Source() ... })
//	}
package testutil
