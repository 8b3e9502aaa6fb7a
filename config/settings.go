package config

import (
	"time"

	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/validation"
	"github.com/kbukum/lazyseq/version"
)

// Settings is the configuration of an application embedding the engine:
// logging plus the optional OTLP exporters behind observability.Traced and
// observability.Metered.
type Settings struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Tracing     TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics     MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults applies default values to every section.
func (s *Settings) ApplyDefaults() {
	if s.Environment == "" {
		s.Environment = "development"
	}
	if s.Version == "" {
		s.Version = version.Short()
	}
	s.Logging.ApplyDefaults()
	if s.Tracing.SampleRate == 0 {
		s.Tracing.SampleRate = 1
	}
	if s.Metrics.Interval <= 0 {
		s.Metrics.Interval = 15 * time.Second
	}
}

// Validate checks struct tags and the rules between fields. Errors are
// INVALID_ARGUMENT AppErrors listing the offending configuration keys.
func (s *Settings) Validate() error {
	if err := validation.Validate(s); err != nil {
		return err
	}
	return validation.New().
		RequiredWhen(s.Tracing.Enabled, "tracing.endpoint", s.Tracing.Endpoint).
		RequiredWhen(s.Metrics.Enabled, "metrics.endpoint", s.Metrics.Endpoint).
		Err()
}
