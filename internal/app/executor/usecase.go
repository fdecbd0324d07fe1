package executor

import (
	"context"
	"errors"
	"strings"
	"time"

	"gridquest/internal/app/planner"
	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"
)

const defaultMaxReplans = 3

// GoalPlanner is the planning collaborator: snapshot + goal in, ordered plan
// or a documented failure out.
type GoalPlanner interface {
	Plan(req planner.Request) (planner.Response, error)
}

// UseCase realizes plans against a live, externally mutable world. Each step
// is re-validated against a fresh snapshot before its real action runs; any
// divergence abandons the remaining plan and requests a full replan. The
// world is treated as adversarial between steps, so at most one externally
// observable action is ever taken on a stale assumption.
type UseCase struct {
	Planner    GoalPlanner
	Snapshots  ports.SnapshotProvider
	Runner     ports.ActionRunner
	Plans      ports.PlanRepository
	Events     ports.EventRepository
	Tx         ports.TxManager
	Metrics    ports.ExecutorMetrics
	MaxReplans int
	Now        func() time.Time
}

type Request struct {
	AgentID string
	Goal    plan.Goal
}

type Response struct {
	PlanID         string
	StepsCommitted int
	Replans        int
	GoalReached    bool
	Final          plan.Snapshot
}

// stepResult is what one pass over a plan's steps reports back to the
// replanning loop.
type stepResult struct {
	state     StepState
	stepIndex int
	actionID  string
	cause     error
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.AgentID) == "" || req.Goal.Empty() {
		return Response{}, ErrInvalidRequest
	}

	maxReplans := u.MaxReplans
	if maxReplans <= 0 {
		maxReplans = defaultMaxReplans
	}

	out := Response{}
	for {
		snap, err := u.Snapshots.SnapshotForAgent(ctx, req.AgentID)
		if err != nil {
			return out, err
		}

		planned, err := u.Planner.Plan(planner.Request{Snapshot: snap, Goal: req.Goal})
		if err != nil {
			return out, err
		}
		active := planned.Plan
		out.PlanID = active.ID

		if active.Empty() {
			out.GoalReached = true
			out.Final = snap
			u.recordGoalReached()
			err = u.inTx(ctx, func(txCtx context.Context) error {
				if err := u.appendEvent(txCtx, req.AgentID, plan.EventGoalReached, map[string]any{
					"plan_id": active.ID,
					"steps":   0,
				}); err != nil {
					return err
				}
				return u.saveCheckpoint(txCtx, req.AgentID, req.Goal, active, len(active.Steps), ports.PlanStatusCompleted)
			})
			return out, err
		}

		err = u.inTx(ctx, func(txCtx context.Context) error {
			if err := u.appendEvent(txCtx, req.AgentID, plan.EventPlanStarted, map[string]any{
				"plan_id":    active.ID,
				"steps":      len(active.Steps),
				"total_cost": active.TotalCost,
			}); err != nil {
				return err
			}
			return u.saveCheckpoint(txCtx, req.AgentID, req.Goal, active, 0, ports.PlanStatusActive)
		})
		if err != nil {
			return out, err
		}

		result, err := u.runSteps(ctx, req.AgentID, active, &out)
		if err != nil {
			return out, err
		}

		if result.state == StepCommitted {
			// Whole plan ran; confirm the goal against the real world before
			// declaring success, since it may have drifted after the last step.
			final, err := u.Snapshots.SnapshotForAgent(ctx, req.AgentID)
			if err != nil {
				return out, err
			}
			if req.Goal.SatisfiedBy(final) {
				out.GoalReached = true
				out.Final = final
				u.recordGoalReached()
				err = u.inTx(ctx, func(txCtx context.Context) error {
					if err := u.appendEvent(txCtx, req.AgentID, plan.EventGoalReached, map[string]any{
						"plan_id": active.ID,
						"steps":   len(active.Steps),
					}); err != nil {
						return err
					}
					return u.saveCheckpoint(txCtx, req.AgentID, req.Goal, active, len(active.Steps), ports.PlanStatusCompleted)
				})
				return out, err
			}
			result = stepResult{state: StepInvalidated, stepIndex: len(active.Steps), cause: ErrPreconditionFailed}
		}

		out.Replans++
		if out.Replans > maxReplans {
			u.recordAborted()
			abort := &AbortedError{AgentID: req.AgentID, PlanID: active.ID, Replans: out.Replans - 1, Cause: result.cause}
			err = u.inTx(ctx, func(txCtx context.Context) error {
				if err := u.appendEvent(txCtx, req.AgentID, plan.EventExecutionAborted, map[string]any{
					"plan_id": active.ID,
					"replans": out.Replans - 1,
				}); err != nil {
					return err
				}
				return u.saveCheckpoint(txCtx, req.AgentID, req.Goal, active, result.stepIndex, ports.PlanStatusAborted)
			})
			if err != nil {
				return out, err
			}
			return out, abort
		}
		u.recordReplan()
		if err := u.appendEvent(ctx, req.AgentID, plan.EventReplanRequested, map[string]any{
			"plan_id":    active.ID,
			"step_index": result.stepIndex,
			"action_id":  result.actionID,
			"step_state": result.state.String(),
		}); err != nil {
			return out, err
		}
	}
}

// runSteps walks the plan until every step commits or one diverges. It
// returns StepCommitted when the full plan ran, otherwise the state the
// diverging step ended in. Cancellation is honored between steps only; an
// in-flight action always runs to completion.
func (u UseCase) runSteps(ctx context.Context, agentID string, active plan.Plan, out *Response) (stepResult, error) {
	for i, step := range active.Steps {
		if err := ctx.Err(); err != nil {
			return stepResult{}, err
		}

		// Validating: against the latest real snapshot, never the snapshot
		// assumed at plan time.
		live, err := u.Snapshots.SnapshotForAgent(ctx, agentID)
		if err != nil {
			return stepResult{}, err
		}
		if !step.Action.Applicable(live) {
			u.recordStepInvalidated()
			if err := u.appendEvent(ctx, agentID, plan.EventStepInvalidated, map[string]any{
				"plan_id":    active.ID,
				"step_index": i,
				"action_id":  step.Action.ID,
			}); err != nil {
				return stepResult{}, err
			}
			return stepResult{state: StepInvalidated, stepIndex: i, actionID: step.Action.ID, cause: ErrPreconditionFailed}, nil
		}

		// Executing: the one suspension point per step.
		outcome, err := u.Runner.ExecuteAction(ctx, agentID, step.Action)
		if err != nil {
			return stepResult{}, err
		}
		if !outcome.Committed {
			u.recordStepFailed()
			if err := u.appendEvent(ctx, agentID, plan.EventStepFailed, map[string]any{
				"plan_id":          active.ID,
				"step_index":       i,
				"action_id":        step.Action.ID,
				"failure_code":     outcome.FailureCode,
				"cooldown_seconds": outcome.CooldownRemainingSeconds,
			}); err != nil {
				return stepResult{}, err
			}
			return stepResult{state: StepFailed, stepIndex: i, actionID: step.Action.ID, cause: errors.New(outcome.FailureCode)}, nil
		}

		out.StepsCommitted++
		u.recordStepCommitted()
		err = u.inTx(ctx, func(txCtx context.Context) error {
			if err := u.appendEvent(txCtx, agentID, plan.EventStepCommitted, map[string]any{
				"plan_id":    active.ID,
				"step_index": i,
				"action_id":  step.Action.ID,
			}); err != nil {
				return err
			}
			return u.saveCheckpoint(txCtx, agentID, plan.Goal{}, active, i+1, ports.PlanStatusActive)
		})
		if err != nil {
			return stepResult{}, err
		}
	}
	return stepResult{state: StepCommitted, stepIndex: len(active.Steps)}, nil
}

func (u UseCase) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.Tx == nil {
		return fn(ctx)
	}
	return u.Tx.RunInTx(ctx, fn)
}

func (u UseCase) appendEvent(ctx context.Context, agentID, eventType string, payload map[string]any) error {
	if u.Events == nil {
		return nil
	}
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	return u.Events.Append(ctx, agentID, []plan.Event{{
		Type:       eventType,
		OccurredAt: now(),
		Payload:    payload,
	}})
}

func (u UseCase) saveCheckpoint(ctx context.Context, agentID string, goal plan.Goal, active plan.Plan, cursor int, status string) error {
	if u.Plans == nil {
		return nil
	}
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}

	existing, err := u.Plans.GetByAgentID(ctx, agentID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	if goal.Empty() {
		goal = existing.Goal
	}

	steps := make([]ports.CheckpointStep, 0, len(active.Steps))
	for _, s := range active.Steps {
		steps = append(steps, ports.CheckpointStep{
			ActionID: s.Action.ID,
			Cost:     s.Action.Cost,
			Effects:  s.Action.Effects,
		})
	}
	record := ports.PlanCheckpointRecord{
		AgentID:   agentID,
		PlanID:    active.ID,
		Goal:      goal,
		Steps:     steps,
		Cursor:    cursor,
		Status:    status,
		TotalCost: active.TotalCost,
		Version:   existing.Version + 1,
		UpdatedAt: now(),
	}
	return u.Plans.SaveWithVersion(ctx, record, existing.Version)
}

func (u UseCase) recordStepCommitted() {
	if u.Metrics != nil {
		u.Metrics.RecordStepCommitted()
	}
}

func (u UseCase) recordStepInvalidated() {
	if u.Metrics != nil {
		u.Metrics.RecordStepInvalidated()
	}
}

func (u UseCase) recordStepFailed() {
	if u.Metrics != nil {
		u.Metrics.RecordStepFailed()
	}
}

func (u UseCase) recordReplan() {
	if u.Metrics != nil {
		u.Metrics.RecordReplan()
	}
}

func (u UseCase) recordGoalReached() {
	if u.Metrics != nil {
		u.Metrics.RecordGoalReached()
	}
}

func (u UseCase) recordAborted() {
	if u.Metrics != nil {
		u.Metrics.RecordAborted()
	}
}
