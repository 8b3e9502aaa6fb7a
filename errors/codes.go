package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Source errors
const (
	// ErrCodeInvalidSource indicates a value that is not a recognized sequence source.
	ErrCodeInvalidSource ErrorCode = "INVALID_SOURCE"
	// ErrCodeIncompatibleKind indicates an asynchronous source reached a pipeline declared synchronous.
	ErrCodeIncompatibleKind ErrorCode = "INCOMPATIBLE_KIND"
)

// Argument errors
const (
	// ErrCodeInvalidArgument indicates an operator or config argument is unusable.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Result errors
const (
	// ErrCodePendingResult indicates a pending result was read without awaiting it.
	ErrCodePendingResult ErrorCode = "PENDING_RESULT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var knownCodes = map[ErrorCode]bool{
	ErrCodeInvalidSource:    true,
	ErrCodeIncompatibleKind: true,
	ErrCodeInvalidArgument:  true,
	ErrCodePendingResult:    true,
	ErrCodeInternal:         true,
}

// IsKnownCode reports whether code is one of the codes defined by this package.
func IsKnownCode(code ErrorCode) bool {
	return knownCodes[code]
}
