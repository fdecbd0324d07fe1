package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gridquest/internal/app/catalog"
	"gridquest/internal/app/planner"
	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"
)

var ErrInvalidRequest = errors.New("invalid diagnostics request")

// UseCase answers "would this work" questions without changing anything:
// fact validation against the canonical key space and reachability probes
// that plan but never execute.
type UseCase struct {
	Catalog   *catalog.Registry
	Planner   planner.UseCase
	Snapshots ports.SnapshotProvider
}

// CheckFacts reports every way a fact set disagrees with the canonical key
// space, instead of stopping at the first, so a caller can fix a whole
// payload in one round trip.
func (u UseCase) CheckFacts(req CheckRequest) CheckResponse {
	space := u.Catalog.Space()
	out := CheckResponse{Valid: true, Issues: []FactIssue{}, Missing: []plan.Key{}}

	keys := make([]plan.Key, 0, len(req.Facts))
	for k := range req.Facts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, k := range keys {
		v := req.Facts[k]
		if !space.Contains(k) {
			out.Issues = append(out.Issues, FactIssue{Key: k, Reason: "unknown key"})
			continue
		}
		if want, _ := space.KindOf(k); want != v.Kind {
			out.Issues = append(out.Issues, FactIssue{Key: k, Reason: "kind mismatch", Got: v.Kind, Want: want})
		}
	}
	for _, k := range space.Keys() {
		if _, ok := req.Facts[k]; !ok {
			out.Missing = append(out.Missing, k)
		}
	}
	out.Valid = len(out.Issues) == 0
	return out
}

// Probe plans toward the goal from a fresh snapshot and classifies the
// result. The world is only read.
func (u UseCase) Probe(ctx context.Context, req ProbeRequest) (ProbeResponse, error) {
	if strings.TrimSpace(req.AgentID) == "" || req.Goal.Empty() {
		return ProbeResponse{}, ErrInvalidRequest
	}
	snap, err := u.Snapshots.SnapshotForAgent(ctx, req.AgentID)
	if err != nil {
		return ProbeResponse{}, err
	}

	resp, err := u.Planner.Plan(planner.Request{Snapshot: snap, Goal: req.Goal})
	if err != nil {
		var budget *planner.BudgetExceededError
		switch {
		case errors.As(err, &budget):
			return ProbeResponse{Outcome: OutcomeBudgetExceeded, Expanded: budget.Expanded, Budget: budget.Budget}, nil
		case errors.Is(err, planner.ErrUnreachable):
			return ProbeResponse{Outcome: OutcomeUnreachable, Expanded: resp.Expanded}, nil
		default:
			return ProbeResponse{}, err
		}
	}

	out := ProbeResponse{
		Outcome:   OutcomeReachable,
		Steps:     len(resp.Plan.Steps),
		TotalCost: resp.Plan.TotalCost,
		Expanded:  resp.Expanded,
		ActionIDs: resp.Plan.ActionIDs(),
	}
	if resp.Plan.Empty() {
		out.Outcome = OutcomeAlreadyHeld
	}
	return out, nil
}

// Trace renders a plan step by step for humans reading logs or a terminal.
func Trace(p plan.Plan) string {
	if p.Empty() {
		return fmt.Sprintf("plan %s: goal already held, nothing to do", p.ID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "plan %s: %d steps, total cost %d\n", p.ID, len(p.Steps), p.TotalCost)
	for i, step := range p.Steps {
		fmt.Fprintf(&b, "  %d. %s (cost %d)", i+1, step.Action.ID, step.Action.Cost)
		if len(step.Action.Pre) > 0 {
			parts := make([]string, 0, len(step.Action.Pre))
			for _, c := range step.Action.Pre {
				parts = append(parts, fmt.Sprintf("%s=%s", c.Key, c.Value.String()))
			}
			fmt.Fprintf(&b, " requires %s", strings.Join(parts, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
