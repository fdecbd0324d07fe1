package ports

import (
	"context"
	"time"

	"gridquest/internal/domain/plan"
)

const (
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusAborted   = "aborted"
)

// CheckpointStep is the persisted shape of one plan step: enough to resume
// or render the plan, without pinning full snapshots.
type CheckpointStep struct {
	ActionID string            `json:"action_id"`
	Cost     int               `json:"cost"`
	Effects  []plan.Assignment `json:"effects"`
}

// PlanCheckpointRecord is the executor's durable cursor into the active
// plan, updated after every committed step under optimistic versioning.
type PlanCheckpointRecord struct {
	AgentID   string
	PlanID    string
	Goal      plan.Goal
	Steps     []CheckpointStep
	Cursor    int
	Status    string
	TotalCost int
	Version   int64
	UpdatedAt time.Time
}

type PlanRepository interface {
	GetByAgentID(ctx context.Context, agentID string) (PlanCheckpointRecord, error)
	SaveWithVersion(ctx context.Context, record PlanCheckpointRecord, expectedVersion int64) error
}

type EventRepository interface {
	Append(ctx context.Context, agentID string, events []plan.Event) error
	ListByAgentID(ctx context.Context, agentID string, limit int) ([]plan.Event, error)
}
