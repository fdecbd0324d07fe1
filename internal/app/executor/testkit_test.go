package executor

import (
	"context"
	"sync"

	"gridquest/internal/app/catalog"
	"gridquest/internal/app/planner"
	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"
)

// fakeWorld is a live, externally mutable world for executor tests: reading
// a snapshot reflects current facts, executing an action applies its effects
// for real, and hooks inject drift and failures between the two.
type fakeWorld struct {
	mu           sync.Mutex
	facts        map[plan.Key]plan.Value
	beforeRead   func(w *fakeWorld, reads int)
	failNext     map[string]string
	failOnce     map[string]string
	executed     []string
	reads        int
	cancelAfter  context.CancelFunc
	cancelOnExec int
}

func newFakeWorld(facts map[plan.Key]plan.Value) *fakeWorld {
	copied := make(map[plan.Key]plan.Value, len(facts))
	for k, v := range facts {
		copied[k] = v
	}
	return &fakeWorld{facts: copied, failNext: map[string]string{}, failOnce: map[string]string{}}
}

func (w *fakeWorld) set(k plan.Key, v plan.Value) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.facts[k] = v
}

func (w *fakeWorld) SnapshotForAgent(_ context.Context, _ string) (plan.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reads++
	if w.beforeRead != nil {
		w.beforeRead(w, w.reads)
	}
	return plan.NewSnapshot(catalog.DefaultKeySpace(), w.facts)
}

func (w *fakeWorld) ExecuteAction(_ context.Context, _ string, a plan.Action) (ports.ActionOutcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.executed = append(w.executed, a.ID)
	if code, ok := w.failOnce[a.ID]; ok {
		delete(w.failOnce, a.ID)
		return ports.ActionOutcome{Committed: false, FailureCode: code}, nil
	}
	if code, ok := w.failNext[a.ID]; ok {
		return ports.ActionOutcome{Committed: false, FailureCode: code}, nil
	}
	for _, eff := range a.Effects {
		w.facts[eff.Key] = eff.Value
	}
	if w.cancelAfter != nil && len(w.executed) >= w.cancelOnExec {
		w.cancelAfter()
	}
	return ports.ActionOutcome{Committed: true}, nil
}

// scriptedPlanner replays canned planner responses, one per call.
type scriptedPlanner struct {
	responses []planner.Response
	errs      []error
	calls     int
}

func (p *scriptedPlanner) Plan(_ planner.Request) (planner.Response, error) {
	i := p.calls
	p.calls++
	if i >= len(p.responses) {
		i = len(p.responses) - 1
	}
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	return p.responses[i], err
}

type memPlanRepo struct {
	mu      sync.Mutex
	byAgent map[string]ports.PlanCheckpointRecord
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{byAgent: map[string]ports.PlanCheckpointRecord{}}
}

func (r *memPlanRepo) GetByAgentID(_ context.Context, agentID string) (ports.PlanCheckpointRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byAgent[agentID]
	if !ok {
		return ports.PlanCheckpointRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r *memPlanRepo) SaveWithVersion(_ context.Context, rec ports.PlanCheckpointRecord, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byAgent[rec.AgentID]
	if ok && current.Version != expectedVersion {
		return ports.ErrConflict
	}
	if !ok && expectedVersion != 0 {
		return ports.ErrConflict
	}
	r.byAgent[rec.AgentID] = rec
	return nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events []plan.Event
}

func (r *memEventRepo) Append(_ context.Context, _ string, events []plan.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func (r *memEventRepo) ListByAgentID(_ context.Context, _ string, limit int) ([]plan.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]plan.Event, len(r.events))
	copy(out, r.events)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memEventRepo) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt.Type)
	}
	return out
}

func manualPlan(id string, actions ...plan.Action) planner.Response {
	steps := make([]plan.Step, 0, len(actions))
	cost := 0
	for _, a := range actions {
		steps = append(steps, plan.Step{Action: a})
		cost += a.Cost
	}
	return planner.Response{Plan: plan.Plan{ID: id, Steps: steps, TotalCost: cost}}
}
