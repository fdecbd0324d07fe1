package plan

import (
	"errors"
	"testing"
)

func TestAction_ApplicableChecksAllPreconditions(t *testing.T) {
	snap, _ := NewSnapshot(testSpace(), map[Key]Value{
		"at_bank": BoolValue(true),
		"hp":      IntValue(50),
	})

	both := Action{ID: "a", Pre: []Condition{
		{Key: "at_bank", Value: BoolValue(true)},
		{Key: "hp", Value: IntValue(50)},
	}}
	if !both.Applicable(snap) {
		t.Fatalf("expected action applicable when all preconditions hold")
	}

	oneOff := Action{ID: "b", Pre: []Condition{
		{Key: "at_bank", Value: BoolValue(true)},
		{Key: "hp", Value: IntValue(99)},
	}}
	if oneOff.Applicable(snap) {
		t.Fatalf("expected action inapplicable when any precondition fails")
	}
}

func TestAction_ApplyLeavesInputUntouched(t *testing.T) {
	snap, _ := NewSnapshot(testSpace(), map[Key]Value{"at_bank": BoolValue(false)})
	act := Action{ID: "move_to_bank", Effects: []Assignment{{Key: "at_bank", Value: BoolValue(true)}}, Cost: 1}

	out := act.Apply(snap)
	if !out.Bool("at_bank") {
		t.Fatalf("expected effect write in result snapshot")
	}
	if snap.Bool("at_bank") {
		t.Fatalf("input snapshot must stay untouched")
	}
}

func TestAction_ValidateRejectsUnknownEffectKey(t *testing.T) {
	act := Action{ID: "bad", Effects: []Assignment{{Key: "mana", Value: IntValue(1)}}}
	if err := act.Validate(testSpace()); !errors.Is(err, ErrInvalidStateKey) {
		t.Fatalf("expected ErrInvalidStateKey, got %v", err)
	}
}

func TestGoal_UnmetCountsFailedConstraints(t *testing.T) {
	snap, _ := NewSnapshot(testSpace(), map[Key]Value{
		"at_bank": BoolValue(false),
		"hp":      IntValue(80),
	})
	goal := NewGoal(
		Condition{Key: "at_bank", Value: BoolValue(true)},
		Condition{Key: "hp", Value: IntValue(80)},
	)

	if got := goal.Unmet(snap); got != 1 {
		t.Fatalf("expected 1 unmet constraint, got %d", got)
	}
	if goal.SatisfiedBy(snap) {
		t.Fatalf("goal must not be satisfied with unmet constraints")
	}
}

func TestGoal_AbsentVariableCountsAsUnmet(t *testing.T) {
	snap, _ := NewSnapshot(testSpace(), map[Key]Value{})
	goal := NewGoal(Condition{Key: "at_bank", Value: BoolValue(false)})
	if goal.SatisfiedBy(snap) {
		t.Fatalf("a constraint on an absent variable must be unmet")
	}
}

func TestPlan_ReplayAppliesStepsInOrder(t *testing.T) {
	snap, _ := NewSnapshot(testSpace(), map[Key]Value{
		"at_bank": BoolValue(false),
		"hp":      IntValue(10),
	})
	p := Plan{Steps: []Step{
		{Action: Action{ID: "a", Effects: []Assignment{{Key: "hp", Value: IntValue(100)}}}},
		{Action: Action{ID: "b", Effects: []Assignment{{Key: "at_bank", Value: BoolValue(true)}}}},
	}}

	out := p.Replay(snap)
	if hp, _ := out.Int("hp"); hp != 100 || !out.Bool("at_bank") {
		t.Fatalf("unexpected replay result: hp=%d at_bank=%t", hp, out.Bool("at_bank"))
	}
}
