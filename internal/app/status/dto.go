package status

import (
	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"
)

type Request struct {
	AgentID string
}

type Response struct {
	Checkpoint    ports.PlanCheckpointRecord `json:"checkpoint"`
	Facts         map[plan.Key]plan.Value    `json:"facts"`
	GoalSatisfied bool                       `json:"goal_satisfied"`
	StepsRemain   int                        `json:"steps_remaining"`
}
