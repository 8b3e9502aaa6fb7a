package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/stream"
	"github.com/kbukum/lazyseq/validation"
)

// Traversal outcomes reported by the middlewares.
const (
	StatusExhausted = "exhausted"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
)

// codeTransform labels failures that did not come from the engine itself,
// i.e. errors returned by caller functions or sources.
const codeTransform = "TRANSFORM_ERROR"

// Logged returns an Op that logs the start and the outcome of every
// traversal of the wrapped source. A nil log uses the global logger.
func Logged[T any](log *logger.Logger, pipeline string) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] {
		l := log
		if l == nil {
			l = logger.GetGlobalLogger()
		}
		return observe(src, "logged", pipeline, &logObserver{log: l})
	}
}

// Metered returns an Op recording pulls, elements, errors and pull latency
// of the wrapped source on m. A nil m leaves the source untouched.
func Metered[T any](m *Metrics, pipeline string) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] {
		if m == nil {
			return src
		}
		return observe(src, "metered", pipeline, &metricObserver{metrics: m})
	}
}

// Traced returns an Op that opens one span per traversal, adds an event per
// pull and records failures. A nil tracer uses the global provider.
func Traced[T any](tracer trace.Tracer, pipeline string) stream.Op[T, T] {
	return func(src stream.Source[T]) stream.Source[T] {
		tr := tracer
		if tr == nil {
			tr = Tracer(defaultTracerName)
		}
		return observe(src, "traced", pipeline, &spanObserver{tracer: tr})
	}
}

// traversal is the running tally of one pass over a source.
type traversal struct {
	id       string
	pipeline string
	kind     stream.Kind
	pulls    int
	elements int
	started  time.Time
}

type observer interface {
	begin(ctx context.Context, t *traversal)
	scope(ctx context.Context) context.Context
	pulled(ctx context.Context, t *traversal, ok bool, err error, d time.Duration)
	end(ctx context.Context, t *traversal, status string, err error)
}

func observe[T any](src stream.Source[T], op, pipeline string, obs observer) stream.Source[T] {
	if src == nil {
		return stream.Fail[T](errors.InvalidSource(op, src))
	}
	return &observed[T]{source: src, pipeline: pipeline, obs: obs}
}

type observed[T any] struct {
	source   stream.Source[T]
	pipeline string
	obs      observer
	t        *traversal
	finished bool
}

func (o *observed[T]) Kind() stream.Kind { return o.source.Kind() }

func (o *observed[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if o.finished {
		return zero, false, nil
	}
	if o.t == nil {
		o.t = &traversal{
			id:       traversalID(ctx),
			pipeline: o.pipeline,
			kind:     o.source.Kind(),
			started:  time.Now(),
		}
		o.obs.begin(logger.ContextWithTraversal(ctx, o.t.id), o.t)
	}

	ctx = o.obs.scope(logger.ContextWithTraversal(ctx, o.t.id))
	start := time.Now()
	v, ok, err := o.source.Next(ctx)
	o.t.pulls++
	if ok {
		o.t.elements++
	}
	o.obs.pulled(ctx, o.t, ok, err, time.Since(start))

	switch {
	case err != nil:
		o.finish(ctx, StatusFailed, err)
		return zero, false, err
	case !ok:
		o.finish(ctx, StatusExhausted, nil)
		return zero, false, nil
	}
	return v, true, nil
}

func (o *observed[T]) Close() error {
	if o.t != nil && !o.finished {
		o.finish(context.Background(), StatusAbandoned, nil)
	}
	o.finished = true
	return o.source.Close()
}

func (o *observed[T]) finish(ctx context.Context, status string, err error) {
	o.finished = true
	o.obs.end(ctx, o.t, status, err)
}

// traversalID reuses the id of an enclosing observed traversal so stacked
// middlewares report under one id.
func traversalID(ctx context.Context) string {
	if id := logger.TraversalID(ctx); id != "" {
		if _, err := validation.ValidateUUID(logger.FieldTraversalID, id); err == nil {
			return id
		}
	}
	return uuid.NewString()
}

func codeOf(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return codeTransform
}

// --- logging ---

type logObserver struct {
	log *logger.Logger
}

func (l *logObserver) begin(ctx context.Context, t *traversal) {
	l.log = l.log.WithContext(ctx).WithOperator(t.pipeline)
	l.log.Debug("traversal started", logger.Fields(logger.FieldKind, t.kind.String()))
}

func (l *logObserver) scope(ctx context.Context) context.Context { return ctx }

func (l *logObserver) pulled(context.Context, *traversal, bool, error, time.Duration) {}

func (l *logObserver) end(_ context.Context, t *traversal, status string, err error) {
	fields := logger.MergeWithDuration(logger.Fields(
		logger.FieldStatus, status,
		logger.FieldPulls, t.pulls,
		logger.FieldElements, t.elements,
	), time.Since(t.started))

	switch status {
	case StatusFailed:
		l.log.Error("traversal failed", logger.MergeWithError(fields, err))
	case StatusAbandoned:
		l.log.Debug("traversal abandoned", fields)
	default:
		l.log.Info("traversal finished", fields)
	}
}

// --- metrics ---

type metricObserver struct {
	metrics *Metrics
}

func (m *metricObserver) begin(ctx context.Context, t *traversal) {
	m.metrics.RecordStart(ctx, t.pipeline)
}

func (m *metricObserver) scope(ctx context.Context) context.Context { return ctx }

func (m *metricObserver) pulled(ctx context.Context, t *traversal, ok bool, err error, d time.Duration) {
	code := ""
	if err != nil {
		code = codeOf(err)
	}
	m.metrics.RecordPull(ctx, t.pipeline, ok, code, d)
}

func (m *metricObserver) end(ctx context.Context, t *traversal, _ string, _ error) {
	m.metrics.RecordEnd(ctx, t.pipeline)
}

// --- tracing ---

type spanObserver struct {
	tracer trace.Tracer
	span   trace.Span
}

func (s *spanObserver) begin(ctx context.Context, t *traversal) {
	_, s.span = s.tracer.Start(ctx, SpanTraversal, trace.WithAttributes(
		attribute.String(AttrPipeline, t.pipeline),
		attribute.String(AttrTraversalID, t.id),
		attribute.String(AttrKind, t.kind.String()),
	))
}

func (s *spanObserver) scope(ctx context.Context) context.Context {
	ctx = trace.ContextWithSpan(ctx, s.span)
	if sc := s.span.SpanContext(); sc.HasTraceID() {
		ctx = logger.ContextWithTrace(ctx, sc.TraceID().String())
	}
	return ctx
}

func (s *spanObserver) pulled(_ context.Context, t *traversal, ok bool, err error, d time.Duration) {
	if err != nil {
		s.span.RecordError(err, trace.WithAttributes(attribute.String("code", codeOf(err))))
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.AddEvent(EventPull, trace.WithAttributes(
		attribute.Int(AttrPulls, t.pulls),
		attribute.Bool("ok", ok),
		attribute.Int64(AttrDurationUs, d.Microseconds()),
	))
}

func (s *spanObserver) end(_ context.Context, t *traversal, status string, _ error) {
	switch status {
	case StatusExhausted:
		s.span.AddEvent(EventExhausted)
	case StatusAbandoned:
		s.span.AddEvent(EventAbandoned)
	}
	s.span.SetAttributes(
		attribute.Int(AttrPulls, t.pulls),
		attribute.Int(AttrElements, t.elements),
		attribute.String(AttrStatus, status),
	)
	s.span.End()
}
