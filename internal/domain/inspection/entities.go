package inspection

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Inspection is an append-only record of a site visit. The repair estimate
// is frozen at creation time; the property's own repair_estimate mirrors
// the most recent inspection and never diverges from it.
type Inspection struct {
	ID           uint64 `gorm:"primaryKey;column:id"`
	InspectionID string `gorm:"column:inspection_id;type:char(32);not null;uniqueIndex:ux_inspections_inspection_id"`
	// FK to properties.id (numeric)
	PropertyID     uint64          `gorm:"column:property_id;not null;index"`
	Defects        string          `gorm:"column:defects;type:text;not null"`
	TitleStatus    string          `gorm:"column:title_status;size:16;not null"`
	RepairEstimate decimal.Decimal `gorm:"column:repair_estimate;type:decimal(18,2);not null"`
	Notes          string          `gorm:"column:notes;type:text"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Inspection) TableName() string { return "inspections" }

// EncodeDefects stores the deduplicated category list as a JSON array so the
// column round-trips losslessly across MySQL and SQLite.
func EncodeDefects(defects []string) string {
	b, _ := json.Marshal(defects)
	return string(b)
}

func DecodeDefects(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
