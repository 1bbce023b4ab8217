package engine

import (
	"errors"
	"fmt"
)

// ErrNotActive indicates input was submitted with no active question.
// This is caller misuse, not a judged outcome.
var ErrNotActive = errors.New("no active question")

// InvalidTransitionError reports a session operation invoked in a state
// that does not permit it. Surfacing this early keeps the UI and the
// engine from silently desynchronizing.
type InvalidTransitionError struct {
	State State
	Op    string
}

// Error describes the rejected operation.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("operation %q is not valid in session state %q", e.Op, e.State)
}
