package engine

import "errors"

var (
	// ErrUnknownField is returned by SetField when no step declares the name.
	ErrUnknownField = errors.New("engine: unknown field")
	// ErrNotLastStep is returned by Submit when the cursor is not on the last
	// step. Nothing is validated and the completion callback is not invoked.
	ErrNotLastStep = errors.New("engine: submit is only allowed on the last step")
	// ErrSubmissionPending is returned by Submit while a previous submission
	// is still running its completion callback.
	ErrSubmissionPending = errors.New("engine: submission already in progress")
	// ErrContextRequired guards Submit against a nil context.
	ErrContextRequired = errors.New("engine: context is required")
)

// DefaultFailureMessage is the form-level message surfaced when the completion
// callback fails.
const DefaultFailureMessage = "Submission failed. Please try again."
