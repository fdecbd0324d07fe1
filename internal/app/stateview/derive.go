package stateview

import "gridquest/internal/domain/plan"

const (
	KeyHP                 = plan.Key("hp")
	KeyMaxHP              = plan.Key("max_hp")
	KeyInventoryUsed      = plan.Key("inventory_used")
	KeyInventoryCapacity  = plan.Key("inventory_capacity")
	KeyResourceCount      = plan.Key("resource_count")
	KeyHPPercentage       = plan.Key("hp_percentage")
	KeyHPCritical         = plan.Key("hp_critical")
	KeyCombatViable       = plan.Key("combat_viable")
	KeyInventoryFull      = plan.Key("inventory_full")
	KeyResourcesAvailable = plan.Key("resources_available")
)

// Thresholds are the tunable cut-offs for derived flags. They arrive from
// configuration, never as embedded constants at call sites.
type Thresholds struct {
	CriticalHPPercent  int `yaml:"critical_hp_percent"`
	CombatHPPercent    int `yaml:"combat_hp_percent"`
	DefaultCapacity    int `yaml:"default_capacity"`
	MinResourceReserve int `yaml:"min_resource_reserve"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalHPPercent:  15,
		CombatHPPercent:    50,
		DefaultCapacity:    30,
		MinResourceReserve: 1,
	}
}

// Derive computes the derived flags for a raw snapshot. Pure and uncached:
// the same snapshot always yields the same writes, so flags can never go
// stale. Missing or malformed source fields degrade to the defaults noted on
// each flag instead of failing the whole computation.
func Derive(s plan.Snapshot, t Thresholds) []plan.Assignment {
	out := make([]plan.Assignment, 0, 5)
	pct := hpPercentage(s)
	out = append(out,
		plan.Assignment{Key: KeyHPPercentage, Value: plan.IntValue(pct)},
		plan.Assignment{Key: KeyHPCritical, Value: plan.BoolValue(pct > 0 && pct <= t.CriticalHPPercent)},
		plan.Assignment{Key: KeyCombatViable, Value: plan.BoolValue(pct >= t.CombatHPPercent)},
		plan.Assignment{Key: KeyInventoryFull, Value: plan.BoolValue(inventoryFull(s, t.DefaultCapacity))},
		plan.Assignment{Key: KeyResourcesAvailable, Value: plan.BoolValue(resourcesAvailable(s, t.MinResourceReserve))},
	)
	return out
}

// hpPercentage defaults to 0 when hp or max_hp is missing or max_hp is not
// positive: an unknown character is treated as not fit, never as healthy.
func hpPercentage(s plan.Snapshot) int {
	hp, ok := s.Int(KeyHP)
	if !ok {
		return 0
	}
	maxHP, ok := s.Int(KeyMaxHP)
	if !ok || maxHP <= 0 {
		return 0
	}
	if hp <= 0 {
		return 0
	}
	if hp >= maxHP {
		return 100
	}
	return hp * 100 / maxHP
}

// inventoryFull falls back to the configured default capacity when the
// snapshot reports none, matching how the game treats unconfigured bags.
func inventoryFull(s plan.Snapshot, defaultCapacity int) bool {
	used, ok := s.Int(KeyInventoryUsed)
	if !ok || used < 0 {
		return false
	}
	capacity, ok := s.Int(KeyInventoryCapacity)
	if !ok || capacity <= 0 {
		capacity = defaultCapacity
	}
	return used >= capacity
}

func resourcesAvailable(s plan.Snapshot, minReserve int) bool {
	count, ok := s.Int(KeyResourceCount)
	if !ok {
		return false
	}
	if minReserve < 1 {
		minReserve = 1
	}
	return count >= minReserve
}
