package observability

import (
	"context"
	"errors"

	"github.com/kbukum/lazyseq/config"
	"github.com/kbukum/lazyseq/logger"
)

// ShutdownFunc flushes and stops whatever Setup started.
type ShutdownFunc func(ctx context.Context) error

// Setup initializes the global logger from settings and starts the OTLP
// tracer and meter providers enabled there. The returned ShutdownFunc is
// never nil.
func Setup(ctx context.Context, settings *config.Settings) (ShutdownFunc, error) {
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return noShutdown, err
	}

	logger.Init(settings.Logging)

	var shutdowns []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if settings.Tracing.Enabled {
		tp, err := InitTracer(ctx, TracerConfig{
			ServiceName:    settings.Name,
			ServiceVersion: settings.Version,
			Environment:    settings.Environment,
			Endpoint:       settings.Tracing.Endpoint,
			Insecure:       settings.Tracing.Insecure,
			SampleRate:     settings.Tracing.SampleRate,
		})
		if err != nil {
			return noShutdown, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if settings.Metrics.Enabled {
		mp, err := InitMeter(ctx, &MeterConfig{
			ServiceName:    settings.Name,
			ServiceVersion: settings.Version,
			Environment:    settings.Environment,
			Endpoint:       settings.Metrics.Endpoint,
			Insecure:       settings.Metrics.Insecure,
			Interval:       settings.Metrics.Interval,
		})
		if err != nil {
			return noShutdown, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	return shutdown, nil
}

func noShutdown(context.Context) error { return nil }
