package memory

import (
	"context"

	"gridquest/internal/app/ports"
)

type PlanRepo struct {
	store *Store
}

func NewPlanRepo(store *Store) PlanRepo {
	return PlanRepo{store: store}
}

func (r PlanRepo) GetByAgentID(_ context.Context, agentID string) (ports.PlanCheckpointRecord, error) {
	rec, ok := r.store.plans[agentID]
	if !ok {
		return ports.PlanCheckpointRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r PlanRepo) SaveWithVersion(_ context.Context, rec ports.PlanCheckpointRecord, expectedVersion int64) error {
	current, ok := r.store.plans[rec.AgentID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.plans[rec.AgentID] = rec
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.plans[rec.AgentID] = rec
	return nil
}
