package plan

// Assignment is one explicit variable write produced by an action effect.
type Assignment struct {
	Key   Key   `json:"key"`
	Value Value `json:"value"`
}

// Capability is the single polymorphic surface the planner needs from an
// action: applicability against a snapshot and effect application producing
// a new snapshot. Effects must be a complete set of writes with no side
// effects outside the returned snapshot.
type Capability interface {
	Applicable(Snapshot) bool
	Apply(Snapshot) Snapshot
}

// Action is a declarative unit of change: preconditions as a conjunction of
// variable=value constraints, effects as explicit writes, and a static
// non-negative cost.
type Action struct {
	ID      string       `json:"id"`
	Pre     []Condition  `json:"pre,omitempty"`
	Effects []Assignment `json:"effects"`
	Cost    int          `json:"cost"`
}

var _ Capability = Action{}

func (a Action) Applicable(s Snapshot) bool {
	for _, c := range a.Pre {
		if !c.HeldBy(s) {
			return false
		}
	}
	return true
}

func (a Action) Apply(s Snapshot) Snapshot {
	return s.With(a.Effects)
}

func (a Action) Validate(space *KeySpace) error {
	for _, c := range a.Pre {
		if err := space.checkFact(c.Key, c.Value); err != nil {
			return err
		}
	}
	for _, w := range a.Effects {
		if err := space.checkFact(w.Key, w.Value); err != nil {
			return err
		}
	}
	return nil
}
