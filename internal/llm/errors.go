package llm

import (
	"errors"
	"fmt"
)

// CompletionError wraps any failure from the completion endpoint:
// transport, authentication, or rate limiting. The client performs no
// retries; callers decide whether an iteration is retried or abandoned.
type CompletionError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *CompletionError) Error() string {
	return fmt.Sprintf("llm: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying endpoint failure.
func (e *CompletionError) Unwrap() error {
	return e.Err
}

// IsCompletionError checks if an error is a completion failure.
func IsCompletionError(err error) bool {
	var ce *CompletionError
	return errors.As(err, &ce)
}
