package stream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/lazyseq/stream"
	"github.com/kbukum/lazyseq/testutil"
)

func TestAll(t *testing.T) {
	var got []int
	for v, err := range stream.All(context.Background(), stream.Of(1, 2, 3)) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	testutil.Equal(t, got, []int{1, 2, 3})
}

func TestAll_BreakStopsAndCloses(t *testing.T) {
	src := testutil.Count(testutil.Naturals())
	var got []int
	for v, err := range stream.All[int](context.Background(), src) {
		if err != nil {
			t.Fatal(err)
		}
		if v == 3 {
			break
		}
		got = append(got, v)
	}
	testutil.Equal(t, got, []int{0, 1, 2})
	if src.Pulls() != 4 || !src.Closed() {
		t.Errorf("pulls=%d closed=%v, want 4 and closed", src.Pulls(), src.Closed())
	}
}

func TestAll_YieldsErrorOnce(t *testing.T) {
	sentinel := errors.New("boom")
	var errs []error
	n := 0
	for _, err := range stream.All(context.Background(), testutil.Failing(sentinel, 1, 2)) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	if n != 2 || len(errs) != 1 || errs[0] != sentinel {
		t.Errorf("values=%d errs=%v, want 2 values and one sentinel", n, errs)
	}
}

func TestValues(t *testing.T) {
	var got []string
	for s := range stream.Values(stream.Of("x", "y")) {
		got = append(got, s)
	}
	testutil.Equal(t, got, []string{"x", "y"})
}
