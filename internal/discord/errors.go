package discord

import (
	"errors"
	"fmt"
)

// PlatformError wraps a failure from a messaging primitive. Loop code
// treats these as warnings, never as fatal: deleting an already-deleted
// message or posting to an archived thread must not kill a loop.
type PlatformError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *PlatformError) Error() string {
	return fmt.Sprintf("discord: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying platform failure.
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// IsPlatformError checks if an error came from a messaging primitive.
func IsPlatformError(err error) bool {
	var pe *PlatformError
	return errors.As(err, &pe)
}
