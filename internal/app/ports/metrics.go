package ports

type PlannerMetrics interface {
	RecordPlanned(steps, expanded int)
	RecordUnreachable(expanded int)
	RecordBudgetExceeded(expanded int)
}

type ExecutorMetrics interface {
	RecordStepCommitted()
	RecordStepInvalidated()
	RecordStepFailed()
	RecordReplan()
	RecordGoalReached()
	RecordAborted()
}
