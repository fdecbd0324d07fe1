package executor

// StepState tracks one plan step through the executor's per-step machine:
// Pending -> Validating -> Executing -> Committed, or
// Pending -> Validating -> Invalidated, or
// Pending -> Validating -> Executing -> Failed.
type StepState int

const (
	StepPending StepState = iota
	StepValidating
	StepExecuting
	StepCommitted
	StepInvalidated
	StepFailed
)

func (s StepState) String() string {
	switch s {
	case StepPending:
		return "pending"
	case StepValidating:
		return "validating"
	case StepExecuting:
		return "executing"
	case StepCommitted:
		return "committed"
	case StepInvalidated:
		return "invalidated"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}
