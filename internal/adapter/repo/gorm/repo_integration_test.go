package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("GRIDQUEST_DB_DSN")
	if dsn == "" {
		t.Skip("GRIDQUEST_DB_DSN is required for integration test")
	}
	return dsn
}

func TestPlanRepo_RoundTripAndVersionConflict(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	agentID := "it-plan-roundtrip"
	ctx := context.Background()
	_ = db.Exec("DELETE FROM plan_checkpoints WHERE agent_id = ?", agentID).Error

	repo := NewPlanRepo(db)
	seed := ports.PlanCheckpointRecord{
		AgentID: agentID,
		PlanID:  "plan-1",
		Goal:    plan.NewGoal(plan.Condition{Key: "ore_banked", Value: plan.BoolValue(true)}),
		Steps: []ports.CheckpointStep{
			{ActionID: "move_to_bank", Cost: 1, Effects: []plan.Assignment{{Key: "at_bank", Value: plan.BoolValue(true)}}},
			{ActionID: "deposit_ore", Cost: 1},
		},
		Cursor:    1,
		Status:    ports.PlanStatusActive,
		TotalCost: 2,
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.SaveWithVersion(ctx, seed, 0); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByAgentID(ctx, agentID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PlanID != "plan-1" || got.Cursor != 1 || len(got.Steps) != 2 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(got.Goal.Conditions) != 1 || got.Goal.Conditions[0].Key != "ore_banked" {
		t.Fatalf("goal did not round-trip: %+v", got.Goal)
	}
	if got.Steps[0].Effects[0].Key != "at_bank" {
		t.Fatalf("step effects did not round-trip: %+v", got.Steps[0])
	}

	stale := got
	stale.Version = 2
	if err := repo.SaveWithVersion(ctx, stale, 7); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict on wrong version, got %v", err)
	}
	if err := repo.SaveWithVersion(ctx, stale, 1); err != nil {
		t.Fatalf("versioned update: %v", err)
	}
}

func TestEventRepo_AppendAndChronologicalList(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	agentID := "it-event-trail"
	ctx := context.Background()
	_ = db.Exec("DELETE FROM execution_events WHERE agent_id = ?", agentID).Error

	repo := NewEventRepo(db)
	base := time.Now().UTC().Truncate(time.Second)
	err = repo.Append(ctx, agentID, []plan.Event{
		{Type: plan.EventPlanStarted, OccurredAt: base, Payload: map[string]any{"plan_id": "plan-1"}},
		{Type: plan.EventStepCommitted, OccurredAt: base.Add(time.Second)},
		{Type: plan.EventGoalReached, OccurredAt: base.Add(2 * time.Second)},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := repo.ListByAgentID(ctx, agentID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Type != plan.EventPlanStarted || all[2].Type != plan.EventGoalReached {
		t.Fatalf("expected chronological trail, got %v", all)
	}
	if id, _ := all[0].Payload["plan_id"].(string); id != "plan-1" {
		t.Fatalf("payload did not round-trip: %v", all[0].Payload)
	}

	tail, err := repo.ListByAgentID(ctx, agentID, 2)
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(tail) != 2 || tail[0].Type != plan.EventStepCommitted {
		t.Fatalf("limit must keep the newest events, got %v", tail)
	}
}
