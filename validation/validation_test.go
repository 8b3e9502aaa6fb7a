package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/lazyseq/errors"
)

func TestValidatorRequired(t *testing.T) {
	if New().Required("name", "John").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("name", "").HasErrors() {
		t.Error("expected error for empty required field")
	}
	if !New().Required("name", "   ").HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorRequiredWhen(t *testing.T) {
	if New().RequiredWhen(false, "endpoint", "").HasErrors() {
		t.Error("expected no error when the condition is false")
	}
	if !New().RequiredWhen(true, "endpoint", "").HasErrors() {
		t.Error("expected error when the condition is true")
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	if New().OptionalUUID("id", "").HasErrors() {
		t.Error("expected no error for empty optional UUID")
	}
	if New().OptionalUUID("id", uuid.NewString()).HasErrors() {
		t.Error("expected no error for valid UUID")
	}
	if !New().OptionalUUID("id", "nope").HasErrors() {
		t.Error("expected error for invalid UUID")
	}
}

func TestValidatorBetween(t *testing.T) {
	tests := []struct {
		value   float64
		wantErr bool
	}{
		{0, false},
		{0.5, false},
		{1, false},
		{-0.1, true},
		{1.5, true},
	}
	for _, tt := range tests {
		if got := New().Between("rate", tt.value, 0, 1).HasErrors(); got != tt.wantErr {
			t.Errorf("Between(%v) error = %v, want %v", tt.value, got, tt.wantErr)
		}
	}
}

func TestValidatorErr(t *testing.T) {
	if err := New().Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}

	err := New().
		Required("name", "").
		Custom(false, "mode", "is unsupported").
		Err()
	if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected two field errors, got %v", appErr.Details["fields"])
	}
	if !strings.Contains(err.Error(), "name: is required") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	if result := v.Required("name", "John").Between("rate", 0.2, 0, 1); result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

type exporter struct {
	Endpoint string  `mapstructure:"endpoint" validate:"required,hostname_port"`
	Rate     float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type settings struct {
	Format   string   `mapstructure:"format" validate:"omitempty,oneof=json console"`
	Exporter exporter `mapstructure:"exporter"`
}

func TestStructValidateValid(t *testing.T) {
	err := Validate(settings{Format: "json", Exporter: exporter{Endpoint: "localhost:4318", Rate: 1}})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(settings{Format: "xml", Exporter: exporter{Rate: 2}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"format: must be one of", "exporter.endpoint: is required", "exporter.sample_rate: must be at most 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateUUID(t *testing.T) {
	valid := uuid.NewString()
	id, err := ValidateUUID("traversal_id", valid)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id.String() != valid {
		t.Errorf("expected %s, got %s", valid, id)
	}
	for _, bad := range []string{"", "bad", uuid.Nil.String()} {
		if _, err := ValidateUUID("traversal_id", bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("SampleRate"); got != "sample_rate" {
		t.Errorf("got %q", got)
	}
}
