package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/stream"
	"github.com/kbukum/lazyseq/testutil"
)

var errBoom = errors.New("boom")

func newTestLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", buf)
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("invalid log line %q: %v", raw, err)
		}
		lines = append(lines, m)
	}
	return lines
}

func findLine(lines []map[string]any, msg string) map[string]any {
	for _, l := range lines {
		if l["message"] == msg {
			return l
		}
	}
	return nil
}

func TestLogged_Exhausted(t *testing.T) {
	var buf bytes.Buffer
	src := Logged[int](newTestLogger(&buf), "numbers")(stream.Of(1, 2, 3))

	testutil.Equal(t, testutil.MustCollect(t, src), []int{1, 2, 3})

	lines := logLines(t, &buf)
	if findLine(lines, "traversal started") == nil {
		t.Fatalf("missing start line in %v", lines)
	}
	done := findLine(lines, "traversal finished")
	if done == nil {
		t.Fatalf("missing finish line in %v", lines)
	}
	if done[logger.FieldPulls] != float64(4) || done[logger.FieldElements] != float64(3) {
		t.Errorf("unexpected counts: %v", done)
	}
	if done[logger.FieldStatus] != StatusExhausted {
		t.Errorf("status = %v", done[logger.FieldStatus])
	}
	if done[logger.FieldOperator] != "numbers" {
		t.Errorf("operator = %v", done[logger.FieldOperator])
	}
	id, _ := done[logger.FieldTraversalID].(string)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("traversal id %q is not a uuid", id)
	}
}

func TestLogged_Failure(t *testing.T) {
	var buf bytes.Buffer
	src := Logged[int](newTestLogger(&buf), "failing")(testutil.Failing(errBoom, 1))

	_, err := stream.Collect(context.Background(), src)
	if err != errBoom {
		t.Fatalf("expected errBoom unchanged, got %v", err)
	}

	failed := findLine(logLines(t, &buf), "traversal failed")
	if failed == nil {
		t.Fatal("missing failure line")
	}
	if failed[logger.FieldError] != "boom" || failed["level"] != "error" {
		t.Errorf("unexpected failure line: %v", failed)
	}
}

func TestLogged_Abandoned(t *testing.T) {
	var buf bytes.Buffer
	src := stream.Take(Logged[int](newTestLogger(&buf), "naturals")(testutil.Naturals()), 2)

	testutil.Equal(t, testutil.MustCollect(t, src), []int{0, 1})

	abandoned := findLine(logLines(t, &buf), "traversal abandoned")
	if abandoned == nil {
		t.Fatal("missing abandoned line")
	}
	if abandoned[logger.FieldPulls] != float64(2) {
		t.Errorf("pulls = %v, want 2", abandoned[logger.FieldPulls])
	}
}

func TestLogged_NoTraversalWithoutPulls(t *testing.T) {
	var buf bytes.Buffer
	src := Logged[int](newTestLogger(&buf), "idle")(testutil.Naturals())
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
}

func TestMiddlewares_PreserveKind(t *testing.T) {
	log := logger.Nop()
	ops := map[string]stream.Op[int, int]{
		"logged":  Logged[int](log, "p"),
		"metered": Metered[int](&Metrics{}, "p"),
		"traced":  Traced[int](nil, "p"),
	}
	for name, op := range ops {
		if k := op(stream.Of(1)).Kind(); k != stream.KindSync {
			t.Errorf("%s: sync source became %v", name, k)
		}
		if k := op(testutil.AsyncSlice(1)).Kind(); k != stream.KindAsync {
			t.Errorf("%s: async source became %v", name, k)
		}
	}
}

func TestMiddlewares_NilSource(t *testing.T) {
	src := Logged[int](logger.Nop(), "p")(nil)
	_, err := stream.Collect(context.Background(), src)
	if !errors.Is(err, stream.ErrInvalidSource) {
		t.Fatalf("expected ErrInvalidSource, got %v", err)
	}
}

func TestMetered(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	testutil.MustCollect(t, Metered[int](metrics, "ok")(stream.Of(1, 2, 3)))
	_, err = stream.Collect(context.Background(), Metered[int](metrics, "bad")(testutil.Failing(errBoom, 7)))
	if err != errBoom {
		t.Fatalf("expected errBoom, got %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}

	if got := sumFor(rm, MetricPulls, "ok"); got != 4 {
		t.Errorf("pulls(ok) = %d, want 4", got)
	}
	if got := sumFor(rm, MetricElements, "ok"); got != 3 {
		t.Errorf("elements(ok) = %d, want 3", got)
	}
	if got := sumFor(rm, MetricErrors, "bad"); got != 1 {
		t.Errorf("errors(bad) = %d, want 1", got)
	}
	if got := sumFor(rm, MetricActive, "ok"); got != 0 {
		t.Errorf("active(ok) = %d, want 0", got)
	}
}

func TestMetered_NilMetricsPassThrough(t *testing.T) {
	src := stream.Of(1)
	if Metered[int](nil, "p")(src) != src {
		t.Error("expected source to be returned unchanged")
	}
}

func sumFor(rm metricdata.ResourceMetrics, name, pipeline string) int64 {
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key(AttrPipeline)); ok && v.AsString() == pipeline {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func newRecorder() (*tracetest.SpanRecorder, trace.Tracer) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return sr, tp.Tracer("test")
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) attribute.Value {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}

func TestTraced(t *testing.T) {
	sr, tracer := newRecorder()

	testutil.MustCollect(t, Traced[int](tracer, "numbers")(stream.Of(1, 2, 3)))

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != SpanTraversal {
		t.Errorf("name = %q", span.Name())
	}
	if got := spanAttr(span, AttrPulls).AsInt64(); got != 4 {
		t.Errorf("pulls = %d, want 4", got)
	}
	if got := spanAttr(span, AttrElements).AsInt64(); got != 3 {
		t.Errorf("elements = %d, want 3", got)
	}
	if got := spanAttr(span, AttrStatus).AsString(); got != StatusExhausted {
		t.Errorf("status = %q", got)
	}
	events := span.Events()
	if len(events) != 5 || events[4].Name != EventExhausted {
		t.Errorf("unexpected events: %v", events)
	}
}

func TestTraced_Error(t *testing.T) {
	sr, tracer := newRecorder()

	_, err := stream.Collect(context.Background(), Traced[int](tracer, "failing")(testutil.Failing[int](errBoom)))
	if err != errBoom {
		t.Fatalf("expected errBoom, got %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("status = %v", spans[0].Status())
	}
	if got := spanAttr(spans[0], AttrStatus).AsString(); got != StatusFailed {
		t.Errorf("status attribute = %q", got)
	}
}

func TestTraced_UpstreamSeesSpanAndTraversal(t *testing.T) {
	_, tracer := newRecorder()
	var sawSpan, sawTraversal bool
	src := stream.GenerateAsync(func(ctx context.Context) (int, bool, error) {
		sawSpan = trace.SpanFromContext(ctx).SpanContext().IsValid()
		sawTraversal = logger.TraversalID(ctx) != ""
		return 0, false, nil
	})

	testutil.MustCollect(t, Traced[int](tracer, "p")(src))

	if !sawSpan || !sawTraversal {
		t.Errorf("span in ctx = %v, traversal in ctx = %v", sawSpan, sawTraversal)
	}
}

func TestStackedMiddlewaresShareTraversalID(t *testing.T) {
	sr, tracer := newRecorder()
	var buf bytes.Buffer

	pipeline := stream.Chain(
		Logged[int](newTestLogger(&buf), "inner"),
		Traced[int](tracer, "outer"),
	)
	testutil.MustCollect(t, pipeline(stream.Of(1, 2)))

	done := findLine(logLines(t, &buf), "traversal finished")
	if done == nil {
		t.Fatal("missing finish line")
	}
	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if logged, traced := done[logger.FieldTraversalID], spanAttr(spans[0], AttrTraversalID).AsString(); logged != traced {
		t.Errorf("logged id %v != traced id %v", logged, traced)
	}
}

func TestTraversalID(t *testing.T) {
	id := uuid.NewString()
	if got := traversalID(logger.ContextWithTraversal(context.Background(), id)); got != id {
		t.Errorf("expected id to be reused, got %q", got)
	}
	if got := traversalID(logger.ContextWithTraversal(context.Background(), "not-a-uuid")); got == "not-a-uuid" {
		t.Error("expected malformed id to be replaced")
	}
	if got := traversalID(context.Background()); got == "" {
		t.Error("expected a fresh id")
	}
}

func TestCodeOf(t *testing.T) {
	if got := codeOf(errBoom); got != codeTransform {
		t.Errorf("codeOf(plain) = %q", got)
	}
	if got := codeOf(stream.ErrInvalidSource); got != "INVALID_SOURCE" {
		t.Errorf("codeOf(ErrInvalidSource) = %q", got)
	}
}
