package report

import (
	"errors"
	"fmt"
)

// FatalError signals that the whole run must stop with a non-zero exit.
// It is returned up through the orchestrator rather than raised as a panic
// so callers and tests can assert on it. Only a few paths produce it: a
// pull request that cannot be found, a missing head commit sha, and a status
// submission the token cannot perform while the run has errors to report.
type FatalError struct {
	Message string
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return e.Message
}

// NewFatalError creates a FatalError with a formatted message.
func NewFatalError(format string, args ...interface{}) *FatalError {
	return &FatalError{Message: fmt.Sprintf(format, args...)}
}

// IsFatal reports whether err is (or wraps) a FatalError.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
