package diagnostics

import "gridquest/internal/domain/plan"

type CheckRequest struct {
	Facts map[plan.Key]plan.Value
}

// FactIssue describes one fact the canonical key space rejects.
type FactIssue struct {
	Key    plan.Key  `json:"key"`
	Reason string    `json:"reason"`
	Got    plan.Kind `json:"got,omitempty"`
	Want   plan.Kind `json:"want,omitempty"`
}

type CheckResponse struct {
	Valid   bool        `json:"valid"`
	Issues  []FactIssue `json:"issues"`
	Missing []plan.Key  `json:"missing"`
}

type ProbeRequest struct {
	AgentID string
	Goal    plan.Goal
}

// ProbeResponse classifies a goal against the live world without touching it.
type ProbeResponse struct {
	Outcome   string   `json:"outcome"`
	Steps     int      `json:"steps"`
	TotalCost int      `json:"total_cost"`
	Expanded  int      `json:"expanded"`
	Budget    int      `json:"budget,omitempty"`
	ActionIDs []string `json:"action_ids,omitempty"`
}

const (
	OutcomeReachable      = "reachable"
	OutcomeAlreadyHeld    = "already_held"
	OutcomeUnreachable    = "unreachable"
	OutcomeBudgetExceeded = "budget_exceeded"
)
