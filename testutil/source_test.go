package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/lazyseq/stream"
)

func TestCounter(t *testing.T) {
	c := Count(stream.Of(1, 2))
	got := MustCollect[int](t, c)
	Equal(t, got, []int{1, 2})
	if c.Pulls() != 3 {
		t.Errorf("expected 3 pulls, got %d", c.Pulls())
	}
	if !c.Closed() {
		t.Error("expected source to be closed")
	}
}

func TestFailing(t *testing.T) {
	boom := errors.New("boom")
	src := Failing(boom, 1)
	ctx := context.Background()
	if v, ok, err := src.Next(ctx); v != 1 || !ok || err != nil {
		t.Fatalf("first pull = %v %v %v", v, ok, err)
	}
	if _, _, err := src.Next(ctx); err != boom {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestKinds(t *testing.T) {
	for _, kc := range Kinds([]string{"a", "b"}) {
		t.Run(kc.Name, func(t *testing.T) {
			src := kc.Source()
			KindIs(t, src, kc.Kind)
			Equal(t, MustCollect(t, src), []string{"a", "b"})
		})
	}
}

func TestNaturals(t *testing.T) {
	Equal(t, MustCollect(t, stream.Take(Naturals(), 3)), []int{0, 1, 2})
	Equal(t, MustCollect(t, stream.Take(AsyncNaturals(), 3)), []int{0, 1, 2})
}
