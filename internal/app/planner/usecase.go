package planner

import (
	"github.com/google/uuid"

	"gridquest/internal/app/catalog"
	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"
)

const defaultMaxNodes = 10000

// UseCase runs forward best-first search over the snapshot graph. Each call
// owns a fresh frontier and visited set; planning is synchronous and
// CPU-bound with no suspension points, so budgets count expanded nodes, not
// wall clock, and identical inputs always produce identical plans.
type UseCase struct {
	Catalog   *catalog.Registry
	MaxNodes  int
	MaxDepth  int
	Metrics   ports.PlannerMetrics
	NewPlanID func() string
}

type Request struct {
	Snapshot plan.Snapshot
	Goal     plan.Goal
}

type Response struct {
	Plan     plan.Plan
	Expanded int
}

func (u UseCase) Plan(req Request) (Response, error) {
	if err := req.Goal.Validate(u.Catalog.Space()); err != nil {
		return Response{}, err
	}

	budget := u.MaxNodes
	if budget <= 0 {
		budget = defaultMaxNodes
	}
	relevant := u.Catalog.RelevantKeys(req.Goal)
	estimate := u.heuristic(req.Goal)

	open := newFrontier()
	start := &node{snap: req.Snapshot, f: estimate(req.Snapshot)}
	open.push(start)
	visited := map[string]int{req.Snapshot.Projection(relevant): 0}

	expanded := 0
	truncated := false
	seq := 0

	for open.Len() > 0 {
		n := open.pop()
		key := n.snap.Projection(relevant)
		if best, ok := visited[key]; ok && best < n.g {
			continue // a cheaper route to this projection was already expanded
		}

		if req.Goal.SatisfiedBy(n.snap) {
			resp := Response{Plan: u.reconstruct(n), Expanded: expanded}
			if u.Metrics != nil {
				u.Metrics.RecordPlanned(len(resp.Plan.Steps), expanded)
			}
			return resp, nil
		}

		if expanded >= budget {
			if u.Metrics != nil {
				u.Metrics.RecordBudgetExceeded(expanded)
			}
			return Response{Expanded: expanded}, &BudgetExceededError{Expanded: expanded, Budget: budget}
		}
		expanded++

		if u.MaxDepth > 0 && n.depth >= u.MaxDepth {
			truncated = true
			continue
		}

		for _, a := range u.Catalog.Applicable(n.snap) {
			succ := a.Apply(n.snap)
			g := n.g + a.Cost
			succKey := succ.Projection(relevant)
			if best, ok := visited[succKey]; ok && best <= g {
				continue
			}
			visited[succKey] = g
			seq++
			open.push(&node{
				snap:   succ,
				action: a,
				parent: n,
				g:      g,
				f:      g + estimate(succ),
				depth:  n.depth + 1,
				seq:    seq,
			})
		}
	}

	if truncated {
		// Depth pruning cut branches off, so exhaustion proves nothing.
		if u.Metrics != nil {
			u.Metrics.RecordBudgetExceeded(expanded)
		}
		return Response{Expanded: expanded}, &BudgetExceededError{Expanded: expanded, Budget: budget}
	}
	if u.Metrics != nil {
		u.Metrics.RecordUnreachable(expanded)
	}
	return Response{Expanded: expanded}, ErrUnreachable
}

// heuristic counts unmet goal constraints scaled by the catalog's
// admissibility bound: one action can satisfy at most MaxEffectWrites
// constraints and costs at least MinCost, so the estimate never overstates
// the true remaining cost.
func (u UseCase) heuristic(g plan.Goal) func(plan.Snapshot) int {
	bound := u.Catalog.MaxEffectWrites()
	minCost := u.Catalog.MinCost()
	return func(s plan.Snapshot) int {
		unmet := g.Unmet(s)
		if unmet == 0 {
			return 0
		}
		return ((unmet + bound - 1) / bound) * minCost
	}
}

func (u UseCase) reconstruct(goalNode *node) plan.Plan {
	steps := make([]plan.Step, 0, goalNode.depth)
	for n := goalNode; n.parent != nil; n = n.parent {
		steps = append(steps, plan.Step{
			Action:       n.action,
			ExpectedPre:  n.parent.snap,
			ExpectedPost: n.snap,
		})
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return plan.Plan{
		ID:        u.planID(),
		Steps:     steps,
		TotalCost: goalNode.g,
	}
}

func (u UseCase) planID() string {
	if u.NewPlanID != nil {
		return u.NewPlanID()
	}
	return uuid.NewString()
}
