// Package validation checks configuration and caller-supplied identifiers.
//
// Struct tag validation (go-playground/validator) covers configuration
// structs; the programmatic Validator covers cross-field rules. Both report
// an INVALID_ARGUMENT *errors.AppError whose "fields" detail lists every
// FieldError.
//
// # Struct Tag Validation
//
//	type Exporter struct {
//	    Endpoint string `mapstructure:"endpoint" validate:"required,hostname_port"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    RequiredWhen(cfg.Enabled, "tracing.endpoint", cfg.Endpoint).
//	    Between("tracing.sample_rate", cfg.SampleRate, 0, 1).
//	    Err()
package validation
