// Package semcsv provides error types for row processing.
package semcsv

import "fmt"

// CastError reports a casting function failure on one column value.
// It is the only locally recoverable failure: configuring an ErrorHandler
// on the cast replaces the failed value instead of surfacing this error.
type CastError struct {
	// Column is the column key (name, or decimal index for positional rows).
	Column string
	// Value is the original, uncast value.
	Value any
	// Err is the underlying caster error.
	Err error
}

// Error returns a formatted message naming the failed column and value.
func (e *CastError) Error() string {
	return fmt.Sprintf("semcsv: cast column %q value %v: %v", e.Column, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *CastError) Unwrap() error {
	return e.Err
}

// WriteError reports a sink failure while flushing one batch.
// Batches already appended before the failure are not retracted; the caller
// must treat the sink contents as unusable and restart the write if
// correctness matters.
type WriteError struct {
	// Batch is the zero-based index of the batch whose append failed.
	Batch int
	// Err is the underlying sink error.
	Err error
}

// Error returns a formatted message with the failed batch index.
func (e *WriteError) Error() string {
	return fmt.Sprintf("semcsv: write batch %d: %v", e.Batch, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// ResourceError reports a failure acquiring an input or output resource.
// It is surfaced immediately; no partial pipeline state exists at that
// point.
type ResourceError struct {
	// Op is the failed operation, "open" or "create".
	Op string
	// Path is the file path involved.
	Path string
	// Err is the underlying error.
	Err error
}

// Error returns a formatted message with the operation and path.
func (e *ResourceError) Error() string {
	return fmt.Sprintf("semcsv: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "semcsv: invalid " + e.Field + ": " + e.Message
}
