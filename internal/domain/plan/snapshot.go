package plan

import (
	"sort"
	"strings"
)

// Snapshot is an immutable mapping of state variables to values. Every
// transition produces a new snapshot via With; the backing map is never
// mutated after construction.
type Snapshot struct {
	space *KeySpace
	facts map[Key]Value
}

// NewSnapshot validates every fact against the canonical key space and
// rejects unknown keys and kind mismatches at construction time.
func NewSnapshot(space *KeySpace, facts map[Key]Value) (Snapshot, error) {
	out := make(map[Key]Value, len(facts))
	for k, v := range facts {
		if err := space.checkFact(k, v); err != nil {
			return Snapshot{}, err
		}
		out[k] = v
	}
	return Snapshot{space: space, facts: out}, nil
}

func (s Snapshot) Space() *KeySpace {
	return s.space
}

func (s Snapshot) Len() int {
	return len(s.facts)
}

func (s Snapshot) Get(k Key) (Value, bool) {
	v, ok := s.facts[k]
	return v, ok
}

func (s Snapshot) Bool(k Key) bool {
	v, ok := s.facts[k]
	return ok && v.Kind == KindBool && v.Bool
}

func (s Snapshot) Int(k Key) (int, bool) {
	v, ok := s.facts[k]
	if !ok || v.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}

func (s Snapshot) Keys() []Key {
	out := make([]Key, 0, len(s.facts))
	for k := range s.facts {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Facts returns a copy of the underlying mapping.
func (s Snapshot) Facts() map[Key]Value {
	out := make(map[Key]Value, len(s.facts))
	for k, v := range s.facts {
		out[k] = v
	}
	return out
}

// With returns a new snapshot with the given writes applied. Writes carry
// keys already validated at action registration, so no re-validation here.
func (s Snapshot) With(writes []Assignment) Snapshot {
	out := make(map[Key]Value, len(s.facts)+len(writes))
	for k, v := range s.facts {
		out[k] = v
	}
	for _, w := range writes {
		out[w.Key] = w.Value
	}
	return Snapshot{space: s.space, facts: out}
}

// Projection renders the snapshot restricted to the given keys as a
// deterministic string, used by the planner to deduplicate search nodes.
// Variables outside the projection cannot affect reachability, so two
// snapshots with equal projections are interchangeable during search.
func (s Snapshot) Projection(keys []Key) string {
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	for _, k := range sorted {
		b.WriteString(string(k))
		b.WriteByte('=')
		if v, ok := s.facts[k]; ok {
			b.WriteString(string(v.Kind))
			b.WriteByte(':')
			b.WriteString(v.String())
		} else {
			b.WriteString("absent")
		}
		b.WriteByte(';')
	}
	return b.String()
}
