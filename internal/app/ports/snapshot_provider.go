package ports

import (
	"context"

	"gridquest/internal/domain/plan"
)

// SnapshotProvider is the one documented accessor for live world/character
// state. It returns a canonical snapshot already flattened and enriched with
// derived flags; callers never reach past it into raw data.
type SnapshotProvider interface {
	SnapshotForAgent(ctx context.Context, agentID string) (plan.Snapshot, error)
}
