package stategraph

import (
	"errors"
	"fmt"
)

// Configuration errors. Raised synchronously to the caller of the offending
// operation, never retried internally.
var (
	// ErrNotInitialized indicates an operation that requires a prior
	// Initialize (or Load) call.
	ErrNotInitialized = errors.New("state machine not initialized")

	// ErrAlreadyInitialized indicates a second Initialize, or a Load after
	// the machine was initialized.
	ErrAlreadyInitialized = errors.New("state machine already initialized")

	// ErrAlreadyEntered indicates a second EnterInitialState.
	ErrAlreadyEntered = errors.New("initial state already entered")
)

// InvalidHistoryStateError indicates a recorded history entry whose child is
// not actually a sub-state of the recorded composite. Typically a stale or
// corrupt snapshot.
type InvalidHistoryStateError struct {
	Composite any
	Recorded  any
}

func (e *InvalidHistoryStateError) Error() string {
	return fmt.Sprintf("state '%v' is not a sub-state of '%v', cannot be its history", e.Recorded, e.Composite)
}

// UnknownStateError indicates a persisted state id that does not resolve
// against the machine's state graph.
type UnknownStateError struct {
	State any
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("state '%v' is not declared in the state graph", e.State)
}

// NonLeafStateError indicates a persisted current state that names a
// composite. The current state is always a leaf, so such a snapshot is
// stale or corrupt.
type NonLeafStateError struct {
	State any
}

func (e *NonLeafStateError) Error() string {
	return fmt.Sprintf("state '%v' is a composite and cannot be the current state", e.State)
}

// MissingInitialStateError indicates entry into a composite state that has
// neither recorded history nor a declared initial sub-state. Raised when the
// entry is attempted, not earlier.
type MissingInitialStateError struct {
	State any
}

func (e *MissingInitialStateError) Error() string {
	return fmt.Sprintf("composite state '%v' has no initial sub-state and no history to enter", e.State)
}

// UnhandledTransitionError wraps a guard or action error for which no
// exception listener was registered. The original error is never swallowed.
type UnhandledTransitionError struct {
	Err error
}

func (e *UnhandledTransitionError) Error() string {
	return fmt.Sprintf("transition error with no listener registered: %v", e.Err)
}

func (e *UnhandledTransitionError) Unwrap() error { return e.Err }
