package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lazyseq/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (development, staging, production).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it as
// the global provider. The returned provider should be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Instrument names.
const (
	MetricPulls        = "stream.pulls"
	MetricElements     = "stream.elements"
	MetricErrors       = "stream.errors"
	MetricPullDuration = "stream.pull.duration"
	MetricActive       = "stream.traversals.active"
)

// Metrics holds the instruments recorded by Metered pipelines.
type Metrics struct {
	pulls        metric.Int64Counter
	elements     metric.Int64Counter
	errors       metric.Int64Counter
	pullDuration metric.Float64Histogram
	active       metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	pulls, err := meter.Int64Counter(MetricPulls,
		metric.WithDescription("Pulls issued against a pipeline"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricPulls, err)
	}

	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Elements yielded by a pipeline"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	errs, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("Pulls that failed, by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrors, err)
	}

	pullDuration, err := meter.Float64Histogram(MetricPullDuration,
		metric.WithDescription("Time spent inside a single pull in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricPullDuration, err)
	}

	active, err := meter.Int64UpDownCounter(MetricActive,
		metric.WithDescription("Traversals started and not yet finished"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricActive, err)
	}

	return &Metrics{
		pulls:        pulls,
		elements:     elements,
		errors:       errs,
		pullDuration: pullDuration,
		active:       active,
	}, nil
}

// RecordStart marks a traversal of pipeline as active.
func (m *Metrics) RecordStart(ctx context.Context, pipeline string) {
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}

// RecordEnd marks a traversal of pipeline as finished with status.
func (m *Metrics) RecordEnd(ctx context.Context, pipeline string) {
	m.active.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}

// RecordPull records one pull: its duration, whether it yielded an element,
// and its error code when it failed.
func (m *Metrics) RecordPull(ctx context.Context, pipeline string, ok bool, code string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String(AttrPipeline, pipeline))
	m.pulls.Add(ctx, 1, attrs)
	m.pullDuration.Record(ctx, duration.Seconds(), attrs)
	if ok {
		m.elements.Add(ctx, 1, attrs)
	}
	if code != "" {
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String(AttrPipeline, pipeline),
			attribute.String("code", code),
		))
	}
}
