package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gridquest/internal/adapter/repo/gorm/model"
	"gridquest/internal/app/ports"
	"gridquest/internal/domain/plan"

	"gorm.io/gorm"
)

type PlanRepo struct {
	db *gorm.DB
}

func NewPlanRepo(db *gorm.DB) PlanRepo {
	return PlanRepo{db: db}
}

func (r PlanRepo) GetByAgentID(ctx context.Context, agentID string) (ports.PlanCheckpointRecord, error) {
	var m model.PlanCheckpoint
	if err := getDBFromCtx(ctx, r.db).Where("agent_id = ?", agentID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PlanCheckpointRecord{}, ports.ErrNotFound
		}
		return ports.PlanCheckpointRecord{}, err
	}

	var goal plan.Goal
	if len(m.Goal) > 0 {
		if err := json.Unmarshal(m.Goal, &goal); err != nil {
			return ports.PlanCheckpointRecord{}, err
		}
	}
	var steps []ports.CheckpointStep
	if len(m.Steps) > 0 {
		if err := json.Unmarshal(m.Steps, &steps); err != nil {
			return ports.PlanCheckpointRecord{}, err
		}
	}
	return ports.PlanCheckpointRecord{
		AgentID:   m.AgentID,
		PlanID:    m.PlanID,
		Goal:      goal,
		Steps:     steps,
		Cursor:    m.Cursor,
		Status:    m.Status,
		TotalCost: m.TotalCost,
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r PlanRepo) SaveWithVersion(ctx context.Context, rec ports.PlanCheckpointRecord, expectedVersion int64) error {
	goal, err := json.Marshal(rec.Goal)
	if err != nil {
		return err
	}
	steps, err := json.Marshal(rec.Steps)
	if err != nil {
		return err
	}

	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.PlanCheckpoint{
			AgentID:   rec.AgentID,
			PlanID:    rec.PlanID,
			Goal:      goal,
			Steps:     steps,
			Cursor:    rec.Cursor,
			Status:    rec.Status,
			TotalCost: rec.TotalCost,
			Version:   rec.Version,
			UpdatedAt: rec.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	updates := map[string]any{
		"plan_id":    rec.PlanID,
		"goal":       goal,
		"steps":      steps,
		"cursor":     rec.Cursor,
		"status":     rec.Status,
		"total_cost": rec.TotalCost,
		"version":    rec.Version,
		"updated_at": rec.UpdatedAt,
	}
	res := db.Model(&model.PlanCheckpoint{}).
		Where("agent_id = ? AND version = ?", rec.AgentID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
