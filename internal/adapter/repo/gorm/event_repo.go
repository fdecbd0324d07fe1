package gormrepo

import (
	"context"
	"encoding/json"

	"gridquest/internal/adapter/repo/gorm/model"
	"gridquest/internal/domain/plan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, agentID string, events []plan.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.ExecutionEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.ExecutionEvent{
			AgentID:    agentID,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

// ListByAgentID returns the trail in chronological order. A positive limit
// keeps only the newest events.
func (r EventRepo) ListByAgentID(ctx context.Context, agentID string, limit int) ([]plan.Event, error) {
	rows := []model.ExecutionEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.ExecutionEvent{AgentID: agentID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]plan.Event, len(rows))
	for i, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out[len(rows)-1-i] = plan.Event{
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		}
	}
	return out, nil
}
