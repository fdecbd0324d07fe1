package plan

import (
	"errors"
	"testing"
)

func testSpace() *KeySpace {
	return NewKeySpace(map[Key]Kind{
		"hp":       KindInt,
		"max_hp":   KindInt,
		"at_bank":  KindBool,
		"zone":     KindString,
		"position": KindPoint,
	})
}

func TestNewSnapshot_RejectsUnknownKey(t *testing.T) {
	_, err := NewSnapshot(testSpace(), map[Key]Value{
		"mana": IntValue(10),
	})
	if !errors.Is(err, ErrInvalidStateKey) {
		t.Fatalf("expected ErrInvalidStateKey, got %v", err)
	}
	var keyErr *InvalidStateKeyError
	if !errors.As(err, &keyErr) || keyErr.Key != "mana" {
		t.Fatalf("expected InvalidStateKeyError for mana, got %v", err)
	}
}

func TestNewSnapshot_RejectsKindMismatch(t *testing.T) {
	_, err := NewSnapshot(testSpace(), map[Key]Value{
		"hp": BoolValue(true),
	})
	if !errors.Is(err, ErrInvalidStateKey) {
		t.Fatalf("expected ErrInvalidStateKey, got %v", err)
	}
}

func TestSnapshot_WithProducesNewSnapshot(t *testing.T) {
	base, err := NewSnapshot(testSpace(), map[Key]Value{
		"hp":      IntValue(80),
		"at_bank": BoolValue(false),
	})
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	next := base.With([]Assignment{{Key: "at_bank", Value: BoolValue(true)}})

	if base.Bool("at_bank") {
		t.Fatalf("base snapshot mutated by With")
	}
	if !next.Bool("at_bank") {
		t.Fatalf("expected at_bank=true in derived snapshot")
	}
	if hp, _ := next.Int("hp"); hp != 80 {
		t.Fatalf("expected untouched hp carried over, got %d", hp)
	}
}

func TestSnapshot_ProjectionIgnoresIrrelevantKeys(t *testing.T) {
	a, _ := NewSnapshot(testSpace(), map[Key]Value{
		"hp":      IntValue(80),
		"at_bank": BoolValue(true),
	})
	b, _ := NewSnapshot(testSpace(), map[Key]Value{
		"hp":      IntValue(5),
		"at_bank": BoolValue(true),
	})

	keys := []Key{"at_bank"}
	if a.Projection(keys) != b.Projection(keys) {
		t.Fatalf("snapshots differing only outside the projection must collapse")
	}
	all := []Key{"at_bank", "hp"}
	if a.Projection(all) == b.Projection(all) {
		t.Fatalf("snapshots differing inside the projection must not collapse")
	}
}

func TestSnapshot_ProjectionMarksAbsentKeys(t *testing.T) {
	withKey, _ := NewSnapshot(testSpace(), map[Key]Value{"at_bank": BoolValue(false)})
	withoutKey, _ := NewSnapshot(testSpace(), map[Key]Value{})

	keys := []Key{"at_bank"}
	if withKey.Projection(keys) == withoutKey.Projection(keys) {
		t.Fatalf("absent key must project differently from an explicit false")
	}
}

func TestValue_EqualAcrossKinds(t *testing.T) {
	if IntValue(1).Equal(BoolValue(true)) {
		t.Fatalf("values of different kinds must not compare equal")
	}
	if !PointValue(Point{X: 2, Y: 3}).Equal(PointValue(Point{X: 2, Y: 3})) {
		t.Fatalf("equal points must compare equal")
	}
}
