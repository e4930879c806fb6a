package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when the instance has never been saved.
var ErrNotFound = errors.New("widget instance not found")

// DecodeError indicates that the state file exists but is not a valid
// state document. It is typed so the CLI can print a hint instead of a bare
// YAML error.
type DecodeError struct {
	Path  string
	cause error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "invalid state file"
	}
	if e.cause == nil {
		return fmt.Sprintf("invalid state file %s", e.Path)
	}
	return fmt.Sprintf("invalid state file %s: %v", e.Path, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

func IsDecodeError(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}
