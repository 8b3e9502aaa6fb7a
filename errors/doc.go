// Package errors provides the structured error type shared by the lazyseq
// packages. Errors carry a machine-readable code, a message, optional details
// and an optional cause, and compare by code with the standard errors.Is.
package errors
