package status

import (
	"context"
	"errors"
	"strings"

	"gridquest/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid status request")

// UseCase reports where an agent stands: the last persisted plan checkpoint
// next to a live snapshot of the world. Read-only.
type UseCase struct {
	Plans     ports.PlanRepository
	Snapshots ports.SnapshotProvider
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.AgentID) == "" {
		return Response{}, ErrInvalidRequest
	}
	rec, err := u.Plans.GetByAgentID(ctx, req.AgentID)
	if err != nil {
		return Response{}, err
	}
	snap, err := u.Snapshots.SnapshotForAgent(ctx, req.AgentID)
	if err != nil {
		return Response{}, err
	}
	remain := len(rec.Steps) - rec.Cursor
	if remain < 0 {
		remain = 0
	}
	return Response{
		Checkpoint:    rec,
		Facts:         snap.Facts(),
		GoalSatisfied: !rec.Goal.Empty() && rec.Goal.SatisfiedBy(snap),
		StepsRemain:   remain,
	}, nil
}
