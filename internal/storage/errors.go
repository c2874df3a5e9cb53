package storage

import "errors"

// Errors returned by Put, matching spec.md §4.1's three failure kinds.
var (
	ErrInvalidFormat     = errors.New("invalid file format")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// IOError wraps a filesystem failure encountered while persisting an
// artifact.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
