package executor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest     = errors.New("invalid execute request")
	ErrPreconditionFailed = errors.New("plan step precondition violated")
	ErrExecutionAborted   = errors.New("plan execution aborted")
)

// AbortedError reports that the bounded replan budget ran out. Cause keeps
// the failure that burned the last attempt.
type AbortedError struct {
	AgentID string
	PlanID  string
	Replans int
	Cause   error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("%s: agent %s after %d replans", ErrExecutionAborted.Error(), e.AgentID, e.Replans)
}

func (e *AbortedError) Unwrap() error {
	return ErrExecutionAborted
}
