package model

import "time"

// PlanCheckpoint persists one row per agent: the active plan and the cursor
// into it. Goal and Steps are stored as JSON since their shape follows the
// action catalog, not the schema.
type PlanCheckpoint struct {
	AgentID   string `gorm:"primaryKey;column:agent_id"`
	PlanID    string `gorm:"column:plan_id"`
	Goal      []byte `gorm:"column:goal;type:jsonb"`
	Steps     []byte `gorm:"column:steps;type:jsonb"`
	Cursor    int    `gorm:"column:cursor"`
	Status    string `gorm:"column:status"`
	TotalCost int    `gorm:"column:total_cost"`
	Version   int64  `gorm:"column:version"`
	UpdatedAt time.Time
}

func (PlanCheckpoint) TableName() string {
	return "plan_checkpoints"
}

type ExecutionEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	AgentID    string    `gorm:"column:agent_id;index"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at;index"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
}

func (ExecutionEvent) TableName() string {
	return "execution_events"
}
