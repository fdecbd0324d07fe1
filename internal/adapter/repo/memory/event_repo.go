package memory

import (
	"context"

	"gridquest/internal/domain/plan"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, agentID string, events []plan.Event) error {
	r.store.events[agentID] = append(r.store.events[agentID], events...)
	return nil
}

func (r EventRepo) ListByAgentID(_ context.Context, agentID string, limit int) ([]plan.Event, error) {
	all := r.store.events[agentID]
	out := make([]plan.Event, len(all))
	copy(out, all)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
