package inmemory

import "sync"

type Snapshot struct {
	PlansProduced    uint64 `json:"plans_produced"`
	PlanSteps        uint64 `json:"plan_steps"`
	NodesExpanded    uint64 `json:"nodes_expanded"`
	Unreachable      uint64 `json:"unreachable"`
	BudgetExceeded   uint64 `json:"budget_exceeded"`
	StepsCommitted   uint64 `json:"steps_committed"`
	StepsInvalidated uint64 `json:"steps_invalidated"`
	StepsFailed      uint64 `json:"steps_failed"`
	Replans          uint64 `json:"replans"`
	GoalsReached     uint64 `json:"goals_reached"`
	Aborted          uint64 `json:"aborted"`
}

// Recorder counts planner and executor outcomes in process. It backs the
// ops KPI endpoint; nothing here survives a restart.
type Recorder struct {
	mu   sync.Mutex
	snap Snapshot
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordPlanned(steps, expanded int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.PlansProduced++
	r.snap.PlanSteps += uint64(steps)
	r.snap.NodesExpanded += uint64(expanded)
}

func (r *Recorder) RecordUnreachable(expanded int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Unreachable++
	r.snap.NodesExpanded += uint64(expanded)
}

func (r *Recorder) RecordBudgetExceeded(expanded int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.BudgetExceeded++
	r.snap.NodesExpanded += uint64(expanded)
}

func (r *Recorder) RecordStepCommitted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.StepsCommitted++
}

func (r *Recorder) RecordStepInvalidated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.StepsInvalidated++
}

func (r *Recorder) RecordStepFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.StepsFailed++
}

func (r *Recorder) RecordReplan() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Replans++
}

func (r *Recorder) RecordGoalReached() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.GoalsReached++
}

func (r *Recorder) RecordAborted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Aborted++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
