package memory

import (
	"sync"

	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"
)

// Store is the single shared backing map set for the in-memory repos. Writes
// are serialized through TxManager, which takes the store lock.
type Store struct {
	mu     sync.Mutex
	plans  map[string]ports.PlanCheckpointRecord
	events map[string][]plan.Event
}

func NewStore() *Store {
	return &Store{
		plans:  make(map[string]ports.PlanCheckpointRecord),
		events: make(map[string][]plan.Event),
	}
}

func (s *Store) SeedPlan(rec ports.PlanCheckpointRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[rec.AgentID] = rec
}
