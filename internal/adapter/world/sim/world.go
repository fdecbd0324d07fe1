package sim

import (
	"context"
	"sync"
	"time"

	"gridquest/internal/app/catalog"
	"gridquest/internal/app/ports"
	"gridquest/internal/app/stateview"
	"gridquest/internal/domain/plan"
)

const (
	FailureCodeCooldown      = "cooldown_active"
	FailureCodeNotApplicable = "precondition_failed"
	FailureCodeUnknownAgent  = "unknown_agent"
)

// Landmarks the move actions travel between.
var landmarks = map[string]plan.Point{
	"move_to_bank":     {X: 0, Y: 0},
	"move_to_forge":    {X: 3, Y: 1},
	"move_to_monster":  {X: 5, Y: 5},
	"move_to_resource": {X: 2, Y: 4},
}

// World is an in-process game authority: it owns the raw facts per agent,
// applies action consequences beyond their declared effects (vitals,
// inventory, loot) and enforces per-action cooldowns. It is the world the
// executor re-validates against, so its answers are allowed to drift from
// what any plan assumed.
type World struct {
	mu         sync.Mutex
	thresholds stateview.Thresholds
	cooldowns  map[string]time.Duration
	lastRun    map[string]map[string]time.Time
	agents     map[string]map[plan.Key]plan.Value
	now        func() time.Time
}

type Config struct {
	Thresholds stateview.Thresholds
	// Cooldowns maps action IDs to the pause enforced between runs.
	Cooldowns map[string]time.Duration
	Now       func() time.Time
}

func New(cfg Config) *World {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	cooldowns := cfg.Cooldowns
	if cooldowns == nil {
		cooldowns = map[string]time.Duration{}
	}
	return &World{
		thresholds: cfg.Thresholds,
		cooldowns:  cooldowns,
		lastRun:    map[string]map[string]time.Time{},
		agents:     map[string]map[plan.Key]plan.Value{},
		now:        now,
	}
}

// SeedAgent installs or replaces an agent's raw facts.
func (w *World) SeedAgent(agentID string, facts map[plan.Key]plan.Value) {
	w.mu.Lock()
	defer w.mu.Unlock()
	copied := make(map[plan.Key]plan.Value, len(facts))
	for k, v := range facts {
		copied[k] = v
	}
	w.agents[agentID] = copied
}

// SetFact mutates one raw fact out-of-band, simulating the rest of the game
// moving while a plan runs.
func (w *World) SetFact(agentID string, key plan.Key, value plan.Value) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if facts, ok := w.agents[agentID]; ok {
		facts[key] = value
	}
}

func (w *World) SnapshotForAgent(_ context.Context, agentID string) (plan.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	facts, ok := w.agents[agentID]
	if !ok {
		return plan.Snapshot{}, ports.ErrNotFound
	}
	return w.snapshotLocked(facts)
}

func (w *World) snapshotLocked(facts map[plan.Key]plan.Value) (plan.Snapshot, error) {
	raw, err := plan.NewSnapshot(catalog.DefaultKeySpace(), facts)
	if err != nil {
		return plan.Snapshot{}, err
	}
	return raw.With(stateview.Derive(raw, w.thresholds)), nil
}

func (w *World) ExecuteAction(_ context.Context, agentID string, action plan.Action) (ports.ActionOutcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	facts, ok := w.agents[agentID]
	if !ok {
		return ports.ActionOutcome{FailureCode: FailureCodeUnknownAgent}, ports.ErrNotFound
	}

	if remaining := w.cooldownRemainingLocked(agentID, action.ID); remaining > 0 {
		return ports.ActionOutcome{
			FailureCode:              FailureCodeCooldown,
			CooldownRemainingSeconds: int(remaining.Round(time.Second) / time.Second),
		}, nil
	}

	// The world re-checks preconditions itself; it does not trust callers.
	snap, err := w.snapshotLocked(facts)
	if err != nil {
		return ports.ActionOutcome{}, err
	}
	if !action.Applicable(snap) {
		return ports.ActionOutcome{FailureCode: FailureCodeNotApplicable}, nil
	}

	for _, eff := range action.Effects {
		facts[eff.Key] = eff.Value
	}
	w.applyConsequencesLocked(facts, action.ID)
	w.markRunLocked(agentID, action.ID)
	return ports.ActionOutcome{Committed: true}, nil
}

// applyConsequencesLocked layers world-side outcomes on top of an action's
// declared effects: vitals, inventory and position move here, not in the
// catalog.
func (w *World) applyConsequencesLocked(facts map[plan.Key]plan.Value, actionID string) {
	switch actionID {
	case "gather_ore":
		bumpInt(facts, stateview.KeyInventoryUsed, 1)
		bumpInt(facts, stateview.KeyResourceCount, -1)
	case "deposit_ore":
		facts[stateview.KeyInventoryUsed] = plan.IntValue(0)
	case "fight_monster":
		if hp, ok := intFact(facts, stateview.KeyHP); ok {
			hp -= 20
			if hp < 0 {
				hp = 0
			}
			facts[stateview.KeyHP] = plan.IntValue(hp)
		}
	case "rest":
		if max, ok := intFact(facts, stateview.KeyMaxHP); ok {
			facts[stateview.KeyHP] = plan.IntValue(max)
		}
	default:
		if pos, ok := landmarks[actionID]; ok {
			facts[catalog.KeyPosition] = plan.PointValue(pos)
		}
	}
}

func (w *World) cooldownRemainingLocked(agentID, actionID string) time.Duration {
	pause, ok := w.cooldowns[actionID]
	if !ok || pause <= 0 {
		return 0
	}
	last, ok := w.lastRun[agentID][actionID]
	if !ok {
		return 0
	}
	elapsed := w.now().Sub(last)
	if elapsed >= pause {
		return 0
	}
	return pause - elapsed
}

func (w *World) markRunLocked(agentID, actionID string) {
	if _, ok := w.lastRun[agentID]; !ok {
		w.lastRun[agentID] = map[string]time.Time{}
	}
	w.lastRun[agentID][actionID] = w.now()
}

func bumpInt(facts map[plan.Key]plan.Value, key plan.Key, delta int) {
	v, _ := intFact(facts, key)
	v += delta
	if v < 0 {
		v = 0
	}
	facts[key] = plan.IntValue(v)
}

func intFact(facts map[plan.Key]plan.Value, key plan.Key) (int, bool) {
	v, ok := facts[key]
	if !ok || v.Kind != plan.KindInt {
		return 0, false
	}
	return v.Int, true
}
