package plan

import "time"

// Event records one observable transition of plan execution: a step commit,
// an invalidation, a replan request, an abort. Appended by the executor,
// listed by the replay view.
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventPlanStarted      = "plan_started"
	EventStepCommitted    = "step_committed"
	EventStepInvalidated  = "step_invalidated"
	EventStepFailed       = "step_failed"
	EventReplanRequested  = "replan_requested"
	EventGoalReached      = "goal_reached"
	EventExecutionAborted = "execution_aborted"
)
