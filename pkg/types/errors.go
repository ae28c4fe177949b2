package types

import "errors"

var (
	// ErrNotFound is reported when a path does not resolve on the backend.
	ErrNotFound error = errors.New("no such file or directory")
	// ErrChanged is reported when the backend's modification time differs
	// from the caller's expectation.
	ErrChanged error = errors.New("file changed since snapshot")
)
