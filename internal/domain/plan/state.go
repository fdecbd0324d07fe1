package plan

import (
	"fmt"
	"sort"
)

type Key string

type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindString Kind = "string"
	KindPoint  Kind = "point"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Value is a typed state-variable value. Kind selects which field carries
// the payload; the other fields stay at their zero value.
type Value struct {
	Kind  Kind   `json:"kind"`
	Bool  bool   `json:"bool,omitempty"`
	Int   int    `json:"int,omitempty"`
	Str   string `json:"str,omitempty"`
	Point Point  `json:"point,omitempty"`
}

func BoolValue(v bool) Value {
	return Value{Kind: KindBool, Bool: v}
}

func IntValue(v int) Value {
	return Value{Kind: KindInt, Int: v}
}

func StringValue(v string) Value {
	return Value{Kind: KindString, Str: v}
}

func PointValue(p Point) Value {
	return Value{Kind: KindPoint, Point: p}
}

func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindInt:
		return v.Int == o.Int
	case KindString:
		return v.Str == o.Str
	case KindPoint:
		return v.Point == o.Point
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindString:
		return v.Str
	case KindPoint:
		return fmt.Sprintf("(%d,%d)", v.Point.X, v.Point.Y)
	default:
		return "?"
	}
}

// KeySpace is the closed, canonical set of state variables. Snapshots, goals
// and action definitions are all validated against it; an identifier outside
// the space is an integration defect, not a planner input.
type KeySpace struct {
	kinds map[Key]Kind
}

func NewKeySpace(kinds map[Key]Kind) *KeySpace {
	out := make(map[Key]Kind, len(kinds))
	for k, kind := range kinds {
		out[k] = kind
	}
	return &KeySpace{kinds: out}
}

func (ks *KeySpace) Contains(k Key) bool {
	_, ok := ks.kinds[k]
	return ok
}

func (ks *KeySpace) KindOf(k Key) (Kind, bool) {
	kind, ok := ks.kinds[k]
	return kind, ok
}

func (ks *KeySpace) Len() int {
	return len(ks.kinds)
}

func (ks *KeySpace) Keys() []Key {
	out := make([]Key, 0, len(ks.kinds))
	for k := range ks.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (ks *KeySpace) checkFact(k Key, v Value) error {
	kind, ok := ks.kinds[k]
	if !ok {
		return &InvalidStateKeyError{Key: k}
	}
	if v.Kind != kind {
		return &InvalidStateKeyError{Key: k, WrongKind: v.Kind, WantKind: kind}
	}
	return nil
}
