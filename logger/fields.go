package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent   = "component"
	FieldTraversalID = "traversal_id"
	FieldTraceID     = "trace_id"
	FieldSpanID      = "span_id"
	FieldOperator    = "operator"
	FieldKind        = "kind"
	FieldPulls       = "pulls"
	FieldElements    = "elements"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
)

// Fields builds a map[string]any from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("operator", "take", "pulls", 3))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operator that failed.
func ErrorFields(op string, err error) map[string]any {
	return map[string]any{
		FieldOperator: op,
		FieldError:    err.Error(),
	}
}

// DurationFields creates fields for a timed operator.
func DurationFields(op string, d time.Duration) map[string]any {
	return map[string]any{
		FieldOperator: op,
		FieldDuration: d.Milliseconds(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]any, err error) map[string]any {
	if fields == nil {
		fields = make(map[string]any)
	}
	fields[FieldError] = err.Error()
	return fields
}

// MergeWithDuration adds a duration field to an existing map.
func MergeWithDuration(fields map[string]any, d time.Duration) map[string]any {
	if fields == nil {
		fields = make(map[string]any)
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
