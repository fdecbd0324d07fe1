package replay

import "gridquest/internal/domain/plan"

type Request struct {
	AgentID      string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events  []plan.Event `json:"events"`
	Summary Summary      `json:"summary"`
}

// Summary condenses an execution trail into the numbers an operator asks
// for first.
type Summary struct {
	LastPlanID     string         `json:"last_plan_id"`
	StepsCommitted int            `json:"steps_committed"`
	Replans        int            `json:"replans"`
	GoalReached    bool           `json:"goal_reached"`
	Aborted        bool           `json:"aborted"`
	CountsByType   map[string]int `json:"counts_by_type"`
}
