package statictuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Thresholds.CriticalHPPercent != 15 || got.Thresholds.CombatHPPercent != 50 {
		t.Fatalf("expected default thresholds, got %+v", got.Thresholds)
	}
	if len(got.ActionCosts) != 0 {
		t.Fatalf("expected no cost overrides, got %v", got.ActionCosts)
	}
}

func TestLoad_ParsesOverridesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := []byte(`
action_costs:
  fight_monster: 5
  rest: 1
thresholds:
  combat_hp_percent: 60
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ActionCosts["fight_monster"] != 5 || got.ActionCosts["rest"] != 1 {
		t.Fatalf("unexpected overrides: %v", got.ActionCosts)
	}
	if got.Thresholds.CombatHPPercent != 60 {
		t.Fatalf("expected combat threshold 60, got %d", got.Thresholds.CombatHPPercent)
	}
	if got.Thresholds.CriticalHPPercent != 15 || got.Thresholds.DefaultCapacity != 30 {
		t.Fatalf("unset thresholds must fall back to defaults, got %+v", got.Thresholds)
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("action_costs: ["), 0o600); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
