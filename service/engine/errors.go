package engine

import "errors"

var (
	// ErrPermissionDenied is returned when the acting user's side does not
	// hold the role required by the attempted transition.
	ErrPermissionDenied = errors.New("engine: permission denied")

	// ErrInvalidTransition is returned when an action is attempted from a
	// terminal state, or names a transition the definition does not know.
	ErrInvalidTransition = errors.New("engine: invalid transition")
)
