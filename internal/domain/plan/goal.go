package plan

import "sort"

// Condition is one variable=value constraint.
type Condition struct {
	Key   Key   `json:"key"`
	Value Value `json:"value"`
}

func (c Condition) HeldBy(s Snapshot) bool {
	v, ok := s.Get(c.Key)
	return ok && v.Equal(c.Value)
}

// Goal is a conjunction of constraints the final snapshot must satisfy.
// Variables it does not mention are unconstrained.
type Goal struct {
	Conditions []Condition `json:"conditions"`
}

func NewGoal(conditions ...Condition) Goal {
	out := make([]Condition, len(conditions))
	copy(out, conditions)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return Goal{Conditions: out}
}

func (g Goal) Empty() bool {
	return len(g.Conditions) == 0
}

func (g Goal) SatisfiedBy(s Snapshot) bool {
	return g.Unmet(s) == 0
}

// Unmet counts constraints the snapshot does not satisfy yet.
func (g Goal) Unmet(s Snapshot) int {
	n := 0
	for _, c := range g.Conditions {
		if !c.HeldBy(s) {
			n++
		}
	}
	return n
}

func (g Goal) Keys() []Key {
	out := make([]Key, 0, len(g.Conditions))
	for _, c := range g.Conditions {
		out = append(out, c.Key)
	}
	return out
}

func (g Goal) Validate(space *KeySpace) error {
	for _, c := range g.Conditions {
		if err := space.checkFact(c.Key, c.Value); err != nil {
			return err
		}
	}
	return nil
}
