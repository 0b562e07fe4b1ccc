package stepper

import "errors"

var (
	// ErrStateMismatch is raised (as a panic) when the element states no
	// longer line up with the sequence. It can only happen through a bug.
	ErrStateMismatch = errors.New("stepper: element state length does not match sequence length")

	// ErrUnknownPattern indicates a sequence pattern name that is not registered.
	ErrUnknownPattern = errors.New("stepper: unknown sequence pattern")
)
