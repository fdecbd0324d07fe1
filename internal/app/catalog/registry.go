package catalog

import (
	"errors"
	"fmt"
	"sort"

	"gridquest/internal/domain/plan"
)

var (
	ErrDuplicateAction = errors.New("duplicate action id")
	ErrNegativeCost    = errors.New("negative action cost")
)

const defaultActionCost = 1

// Registry holds the closed set of action definitions for one agent. All
// registration happens at construction; the registry is immutable afterwards
// and safe for concurrent reads.
type Registry struct {
	space *plan.KeySpace
	byID  map[string]plan.Action
	ids   []string
}

func NewRegistry(space *plan.KeySpace, actions []plan.Action) (*Registry, error) {
	byID := make(map[string]plan.Action, len(actions))
	ids := make([]string, 0, len(actions))
	for _, a := range actions {
		if a.ID == "" {
			return nil, fmt.Errorf("action with empty id")
		}
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAction, a.ID)
		}
		if a.Cost < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeCost, a.ID)
		}
		if a.Cost == 0 {
			a.Cost = defaultActionCost
		}
		if err := a.Validate(space); err != nil {
			return nil, fmt.Errorf("action %s: %w", a.ID, err)
		}
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	sort.Strings(ids)
	return &Registry{space: space, byID: byID, ids: ids}, nil
}

func (r *Registry) Space() *plan.KeySpace {
	return r.space
}

func (r *Registry) Len() int {
	return len(r.ids)
}

func (r *Registry) Get(id string) (plan.Action, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// All returns every action ordered by id, the order the planner expands in.
func (r *Registry) All() []plan.Action {
	out := make([]plan.Action, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// Applicable returns the actions whose preconditions hold against the
// snapshot, in id order. Shared by frontier expansion and reachability
// diagnostics.
func (r *Registry) Applicable(s plan.Snapshot) []plan.Action {
	out := make([]plan.Action, 0, len(r.ids))
	for _, id := range r.ids {
		if a := r.byID[id]; a.Applicable(s) {
			out = append(out, a)
		}
	}
	return out
}

// RelevantKeys is the projection the planner deduplicates on: every key
// referenced by at least one precondition plus the goal's keys. Variables
// outside this set cannot affect reachability.
func (r *Registry) RelevantKeys(g plan.Goal) []plan.Key {
	seen := map[plan.Key]bool{}
	for _, id := range r.ids {
		for _, c := range r.byID[id].Pre {
			seen[c.Key] = true
		}
	}
	for _, k := range g.Keys() {
		seen[k] = true
	}
	out := make([]plan.Key, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MaxEffectWrites is the admissibility bound for the planner's heuristic:
// no single action can satisfy more goal constraints than it has effect
// writes. Floor 1 so an empty catalog never divides by zero.
func (r *Registry) MaxEffectWrites() int {
	max := 1
	for _, id := range r.ids {
		if n := len(r.byID[id].Effects); n > max {
			max = n
		}
	}
	return max
}

// MinCost is the cheapest action cost, used to scale the heuristic without
// overstating remaining cost.
func (r *Registry) MinCost() int {
	min := 0
	for _, id := range r.ids {
		c := r.byID[id].Cost
		if min == 0 || c < min {
			min = c
		}
	}
	if min == 0 {
		min = defaultActionCost
	}
	return min
}
