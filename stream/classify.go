package stream

import (
	"context"
	"iter"
	"reflect"

	"github.com/kbukum/lazyseq/errors"
)

var (
	ctxType   = reflect.TypeFor[context.Context]()
	errorType = reflect.TypeFor[error]()
	boolType  = reflect.TypeFor[bool]()
)

// Classify reports which source shape v has, checking in order: a pending
// computation (Await(ctx) (X, error)), a value that already carries a Kind, an
// async producer (Next(ctx) (X, bool, error) or a receive channel) and a sync
// producer (Next() (X, bool), a slice, an array or a range-over-func
// sequence). Anything else is KindInvalid.
func Classify(v any) Kind {
	if v == nil {
		return KindInvalid
	}
	t := reflect.TypeOf(v)
	if hasMethod(t, "Await", []reflect.Type{ctxType}, 2, errorType) {
		return KindDeferred
	}
	if k, ok := v.(interface{ Kind() Kind }); ok {
		return k.Kind()
	}
	switch {
	case hasMethod(t, "Next", []reflect.Type{ctxType}, 3, errorType):
		return KindAsync
	case t.Kind() == reflect.Chan && t.ChanDir()&reflect.RecvDir != 0:
		return KindAsync
	case hasMethod(t, "Next", nil, 2, boolType):
		return KindSync
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		return KindSync
	case isSeqFunc(t):
		return KindSync
	}
	return KindInvalid
}

// hasMethod checks that t has a method name taking in and returning out
// values, the last of which is last.
func hasMethod(t reflect.Type, name string, in []reflect.Type, out int, last reflect.Type) bool {
	m, ok := t.MethodByName(name)
	if !ok {
		return false
	}
	mt := m.Type
	offset := 0
	if t.Kind() != reflect.Interface {
		offset = 1 // receiver
	}
	if mt.NumIn()-offset != len(in) || mt.NumOut() != out {
		return false
	}
	for i, want := range in {
		if mt.In(i+offset) != want {
			return false
		}
	}
	return mt.Out(out-1) == last
}

// isSeqFunc matches func(yield func(X) bool).
func isSeqFunc(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	y := t.In(0)
	return y.Kind() == reflect.Func && y.NumIn() == 1 && y.NumOut() == 1 && y.Out(0) == boolType
}

// From converts v into a Source[T]. It accepts, checking deferred shapes
// first: a Source[T]; a Future resolving to any shape From accepts; an
// AsyncIterator[T] or receive channel; a SyncPuller[T], an iter.Seq[T] or a
// []T. Other values yield an INVALID_SOURCE error. A future
// resolving to an unusable value fails at the first pull instead.
func From[T any](v any) (Source[T], error) {
	switch s := v.(type) {
	case nil:
		return nil, errors.InvalidSource("from", v)
	case Source[T]:
		return s, nil
	case Future[Source[T]]:
		return Defer(s), nil
	case Future[[]T]:
		return DeferSlice(s), nil
	case Future[iter.Seq[T]]:
		return deferFrom[T](s), nil
	case Future[func(func(T) bool)]:
		return deferFrom[T](s), nil
	case Future[<-chan T]:
		return deferFrom[T](s), nil
	case Future[chan T]:
		return deferFrom[T](s), nil
	case Future[AsyncIterator[T]]:
		return deferFrom[T](s), nil
	case Future[SyncPuller[T]]:
		return deferFrom[T](s), nil
	case Future[any]:
		return deferFrom[T](s), nil
	case AsyncIterator[T]:
		return FromIterator(s), nil
	case <-chan T:
		return FromChan(s), nil
	case chan T:
		return FromChan(s), nil
	case SyncPuller[T]:
		return FromPuller(s), nil
	case iter.Seq[T]:
		return FromSeq(s), nil
	case func(func(T) bool):
		return FromSeq(s), nil
	case []T:
		return FromSlice(s), nil
	}
	return nil, errors.InvalidSource("from", v)
}

// deferFrom resolves f on the first pull and converts its value with From.
func deferFrom[T, S any](f Future[S]) Source[T] {
	return &deferredSource[T]{op: "from", future: Then(f, func(inner S) (Source[T], error) {
		return From[T](inner)
	})}
}

// MustFrom is like From but panics on error. Intended for tests and
// package-level values.
func MustFrom[T any](v any) Source[T] {
	s, err := From[T](v)
	if err != nil {
		panic(err)
	}
	return s
}
