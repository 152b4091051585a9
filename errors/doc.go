// Package errors provides the structured error type shared by the injector
// packages. Errors carry a machine-readable ErrorCode, optional details and an
// optional cause, and compare equal under errors.Is when their codes match.
package errors
