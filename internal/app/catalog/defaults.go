package catalog

import (
	"gridquest/internal/app/stateview"
	"gridquest/internal/domain/plan"
)

const (
	KeyPosition   = plan.Key("position")
	KeyAtBank     = plan.Key("at_bank")
	KeyAtResource = plan.Key("at_resource")
	KeyAtMonster  = plan.Key("at_monster")
	KeyAtForge    = plan.Key("at_forge")
	KeyHasOre     = plan.Key("has_ore")
	KeyHasBar     = plan.Key("has_bar")
	KeyHasLoot    = plan.Key("has_loot")
	KeyOreBanked  = plan.Key("ore_banked")
)

// DefaultKeySpace is the canonical variable space of the game integration:
// raw character and world facts plus the derived flags stateview computes.
func DefaultKeySpace() *plan.KeySpace {
	return plan.NewKeySpace(map[plan.Key]plan.Kind{
		KeyPosition:   plan.KindPoint,
		KeyAtBank:     plan.KindBool,
		KeyAtResource: plan.KindBool,
		KeyAtMonster:  plan.KindBool,
		KeyAtForge:    plan.KindBool,
		KeyHasOre:     plan.KindBool,
		KeyHasBar:     plan.KindBool,
		KeyHasLoot:    plan.KindBool,
		KeyOreBanked:  plan.KindBool,

		stateview.KeyHP:                plan.KindInt,
		stateview.KeyMaxHP:             plan.KindInt,
		stateview.KeyInventoryUsed:     plan.KindInt,
		stateview.KeyInventoryCapacity: plan.KindInt,
		stateview.KeyResourceCount:     plan.KindInt,

		stateview.KeyHPPercentage:       plan.KindInt,
		stateview.KeyHPCritical:         plan.KindBool,
		stateview.KeyCombatViable:       plan.KindBool,
		stateview.KeyInventoryFull:      plan.KindBool,
		stateview.KeyResourcesAvailable: plan.KindBool,
	})
}

// DefaultActions is the closed action set for the default game profile.
// costOverrides lets the tuning file adjust costs without reopening the set;
// unknown override ids are ignored.
func DefaultActions(costOverrides map[string]int) []plan.Action {
	actions := []plan.Action{
		{
			ID: "craft_bar",
			Pre: []plan.Condition{
				{Key: KeyAtForge, Value: plan.BoolValue(true)},
				{Key: KeyHasOre, Value: plan.BoolValue(true)},
			},
			Effects: []plan.Assignment{
				{Key: KeyHasOre, Value: plan.BoolValue(false)},
				{Key: KeyHasBar, Value: plan.BoolValue(true)},
			},
			Cost: 2,
		},
		{
			ID: "deposit_ore",
			Pre: []plan.Condition{
				{Key: KeyAtBank, Value: plan.BoolValue(true)},
				{Key: KeyHasOre, Value: plan.BoolValue(true)},
			},
			Effects: []plan.Assignment{
				{Key: KeyHasOre, Value: plan.BoolValue(false)},
				{Key: KeyOreBanked, Value: plan.BoolValue(true)},
				{Key: stateview.KeyInventoryFull, Value: plan.BoolValue(false)},
			},
			Cost: 1,
		},
		{
			ID: "fight_monster",
			Pre: []plan.Condition{
				{Key: KeyAtMonster, Value: plan.BoolValue(true)},
				{Key: stateview.KeyCombatViable, Value: plan.BoolValue(true)},
			},
			Effects: []plan.Assignment{
				{Key: KeyHasLoot, Value: plan.BoolValue(true)},
			},
			Cost: 3,
		},
		{
			ID: "gather_ore",
			Pre: []plan.Condition{
				{Key: KeyAtResource, Value: plan.BoolValue(true)},
				{Key: stateview.KeyResourcesAvailable, Value: plan.BoolValue(true)},
				{Key: stateview.KeyInventoryFull, Value: plan.BoolValue(false)},
			},
			Effects: []plan.Assignment{
				{Key: KeyHasOre, Value: plan.BoolValue(true)},
			},
			Cost: 2,
		},
		moveAction("move_to_bank", KeyAtBank),
		moveAction("move_to_forge", KeyAtForge),
		moveAction("move_to_monster", KeyAtMonster),
		moveAction("move_to_resource", KeyAtResource),
		{
			ID: "rest",
			Effects: []plan.Assignment{
				{Key: stateview.KeyCombatViable, Value: plan.BoolValue(true)},
				{Key: stateview.KeyHPCritical, Value: plan.BoolValue(false)},
			},
			Cost: 2,
		},
	}

	for i := range actions {
		if cost, ok := costOverrides[actions[i].ID]; ok && cost > 0 {
			actions[i].Cost = cost
		}
	}
	return actions
}

// moveAction moves between named locations; being somewhere clears being
// anywhere else, so the location flags stay mutually exclusive.
func moveAction(id string, dest plan.Key) plan.Action {
	locations := []plan.Key{KeyAtBank, KeyAtForge, KeyAtMonster, KeyAtResource}
	effects := make([]plan.Assignment, 0, len(locations))
	for _, loc := range locations {
		effects = append(effects, plan.Assignment{Key: loc, Value: plan.BoolValue(loc == dest)})
	}
	return plan.Action{ID: id, Effects: effects, Cost: 1}
}
