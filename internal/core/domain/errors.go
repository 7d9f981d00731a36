package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity or file path does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat indicates a file extension no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// ReadError reports a format-specific parse or decode failure while
// reading a book file. It wraps the underlying cause.
type ReadError struct {
	// Format names the reader that failed.
	Format Format

	// Path is the file being read.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s file %s: %v", e.Format, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError builds a ReadError for the given format and path.
func NewReadError(format Format, path string, err error) *ReadError {
	return &ReadError{Format: format, Path: path, Err: err}
}
