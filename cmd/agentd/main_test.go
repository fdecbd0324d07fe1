package main

import (
	"testing"
	"time"
)

func TestIntEnv(t *testing.T) {
	t.Setenv("PLANNER_MAX_NODES", "250")
	if got := intEnv("PLANNER_MAX_NODES", 0); got != 250 {
		t.Fatalf("intEnv=%d want 250", got)
	}
	t.Setenv("PLANNER_MAX_NODES", "not-a-number")
	if got := intEnv("PLANNER_MAX_NODES", 7); got != 7 {
		t.Fatalf("intEnv=%d want fallback 7", got)
	}
	if got := intEnv("UNSET_ENV_KEY", 42); got != 42 {
		t.Fatalf("intEnv=%d want fallback 42", got)
	}
}

func TestCooldownsEnv(t *testing.T) {
	t.Setenv("WORLD_ACTION_COOLDOWNS", "gather_ore=30, fight_monster=60,bogus,=5,rest=zero")
	got := cooldownsEnv("WORLD_ACTION_COOLDOWNS")
	if len(got) != 2 {
		t.Fatalf("expected 2 parsed cooldowns, got %v", got)
	}
	if got["gather_ore"] != 30*time.Second || got["fight_monster"] != 60*time.Second {
		t.Fatalf("unexpected durations: %v", got)
	}

	t.Setenv("WORLD_ACTION_COOLDOWNS", "")
	if got := cooldownsEnv("WORLD_ACTION_COOLDOWNS"); got != nil {
		t.Fatalf("expected nil for empty env, got %v", got)
	}
}
