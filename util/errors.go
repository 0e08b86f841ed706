package util

import "fmt"

// IOError is returned whenever reading an input file or writing an export
// fails. Parsing and classification never return it.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// NewIOError wraps err with the operation and path it failed on
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *IOError) Unwrap() error {
	return e.Err
}
