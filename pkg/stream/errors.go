package stream

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrEndOfStream indicates that a fixed-width read could not be satisfied
	// because the stream ran out of data. It is recoverable and signals that no
	// more data is available, not that the data is corrupt.
	ErrEndOfStream = errors.New("end of stream")
	// ErrClosed indicates an operation on a stream that has been closed.
	ErrClosed = errors.New("stream closed")
	// ErrNotImplemented indicates an operation that the stream's backend
	// structurally cannot support.
	ErrNotImplemented = errors.New("operation not implemented")
)

// AssertionError is the panic value used for programming errors, such as
// seeking a socket or writing to a closed string stream. It is not meant to be
// recovered in normal operation.
type AssertionError struct {
	// Operation is the stream operation that failed.
	Operation string
	// Err is the underlying cause.
	Err error
}

// Error implements error.Error.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("stream assertion failed in %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AssertionError) Unwrap() error {
	return e.Err
}

// fail panics with an assertion error for the specified operation.
func fail(operation string, err error) {
	panic(&AssertionError{Operation: operation, Err: err})
}
