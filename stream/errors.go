package stream

import "github.com/kbukum/lazyseq/errors"

// Sentinels for errors.Is. Errors returned by the engine carry operator
// details but compare equal to these by code.
var (
	ErrInvalidSource    = errors.New(errors.ErrCodeInvalidSource, "invalid source")
	ErrIncompatibleKind = errors.New(errors.ErrCodeIncompatibleKind, "incompatible source kind")
	ErrInvalidArgument  = errors.New(errors.ErrCodeInvalidArgument, "invalid argument")
	ErrPendingResult    = errors.New(errors.ErrCodePendingResult, "result is pending")
)
