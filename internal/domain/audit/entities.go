package audit

import (
	"time"
)

// Transition is one accepted workflow event. The log is append-only and is
// what makes review overrides and rejections auditable: the justification
// lives here, not in a mutable column.
type Transition struct {
	ID uint64 `gorm:"primaryKey;column:id"`
	// FK to properties.id (numeric)
	PropertyID uint64    `gorm:"column:property_id;not null;index"`
	Event      string    `gorm:"column:event;size:32;not null"`
	FromStage  string    `gorm:"column:from_stage;size:32;not null"`
	ToStage    string    `gorm:"column:to_stage;size:32;not null"`
	Decision   string    `gorm:"column:decision;size:16;not null"`
	Reason     string    `gorm:"column:reason;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Transition) TableName() string { return "stage_transitions" }
