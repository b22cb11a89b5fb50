// Package goal provides the core evaluation engine for declarative goal graphs.
package goal

import "errors"

// ErrEmptyOperation is the value And/Or/All/Any/AllMap/AnyMap panic with
// when called with zero children. An Operation's children list must be
// non-empty.
var ErrEmptyOperation = errors.New("goal: operation requires at least one child")

// ErrNoTest is the value Testable and Actionable panic with when a nil Test
// is supplied. There is no
// general default test to derive once T is erased; use FromState for the
// bool-snapshot convenience constructor, which defaults to truthiness.
var ErrNoTest = errors.New("goal: test must not be nil")

// StateNotFound is the distinguished signal a State reader raises to mean
// "the world does not currently present a readable snapshot; treat as test
// failure" rather than a fatal probe error. seek catches it at the probe
// step and treats the node as failing its test instead of propagating it.
type StateNotFound struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StateNotFound) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any, for errors.Is/errors.As.
func (e *StateNotFound) Unwrap() error {
	return e.Cause
}

// NewStateNotFound builds a StateNotFound error with an optional cause.
func NewStateNotFound(message string, cause error) error {
	return &StateNotFound{Message: message, Cause: cause}
}

// IsStateNotFound reports whether err is, or wraps, a StateNotFound.
func IsStateNotFound(err error) bool {
	var e *StateNotFound
	return errors.As(err, &e)
}
