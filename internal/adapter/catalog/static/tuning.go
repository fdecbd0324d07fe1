package statictuning

import (
	"fmt"
	"os"

	"gridquest/internal/app/stateview"

	"gopkg.in/yaml.v3"
)

// Tuning is the operator-editable knob file: action cost overrides and the
// derived-state thresholds. Everything is optional; zero values fall back to
// the built-in defaults.
type Tuning struct {
	ActionCosts map[string]int       `yaml:"action_costs"`
	Thresholds  stateview.Thresholds `yaml:"thresholds"`
}

// Load reads the tuning file at path. A missing file is not an error; it
// yields the defaults so deployments without a tuning file keep working.
func Load(path string) (Tuning, error) {
	out := Tuning{Thresholds: stateview.DefaultThresholds()}
	if path == "" {
		return out, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning file: %w", err)
	}
	out.Thresholds = fillThresholdDefaults(out.Thresholds)
	return out, nil
}

func fillThresholdDefaults(t stateview.Thresholds) stateview.Thresholds {
	def := stateview.DefaultThresholds()
	if t.CriticalHPPercent <= 0 {
		t.CriticalHPPercent = def.CriticalHPPercent
	}
	if t.CombatHPPercent <= 0 {
		t.CombatHPPercent = def.CombatHPPercent
	}
	if t.DefaultCapacity <= 0 {
		t.DefaultCapacity = def.DefaultCapacity
	}
	if t.MinResourceReserve <= 0 {
		t.MinResourceReserve = def.MinResourceReserve
	}
	return t
}
