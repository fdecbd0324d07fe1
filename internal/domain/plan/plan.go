package plan

// Step pairs an action with the snapshots the planner assumed before and
// after it. The executor re-validates against the live world instead of
// trusting ExpectedPre.
type Step struct {
	Action       Action
	ExpectedPre  Snapshot
	ExpectedPost Snapshot
}

// Plan is an ordered, costed action sequence. It is produced by the planner,
// consumed by the executor, and discarded wholesale on replanning.
type Plan struct {
	ID        string
	Steps     []Step
	TotalCost int
}

func (p Plan) Empty() bool {
	return len(p.Steps) == 0
}

func (p Plan) ActionIDs() []string {
	out := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		out = append(out, s.Action.ID)
	}
	return out
}

// Replay applies every step's effects in order from the given snapshot,
// without touching any collaborator. Used by diagnostics and tests to check
// that a plan's cumulative effects satisfy its goal.
func (p Plan) Replay(from Snapshot) Snapshot {
	cur := from
	for _, s := range p.Steps {
		cur = s.Action.Apply(cur)
	}
	return cur
}
