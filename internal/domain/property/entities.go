package property

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stage is the single source of truth for which actions are legal on a
// property. Every mutation goes through Advance; nothing else writes it.
type Stage string

const (
	StageDocumentsPending    Stage = "documents_pending"
	StageInitial             Stage = "initial"
	StageReviewRequired      Stage = "review_required"
	StagePassed70Rule        Stage = "passed_70_rule"
	StageReviewRequiredTitle Stage = "review_required_title"
	StageInspectionDone      Stage = "inspection_done"
	StageReviewRequired80    Stage = "review_required_80"
	StagePassed80Rule        Stage = "passed_80_rule"
	StageContractGenerated   Stage = "contract_generated"
	StageRejected            Stage = "rejected"
)

// Terminal reports whether no further transitions are legal from s.
func (s Stage) Terminal() bool {
	return s == StageContractGenerated || s == StageRejected
}

// InReview reports whether s is one of the blocked stages that a human
// override can move forward from.
func (s Stage) InReview() bool {
	switch s {
	case StageReviewRequired, StageReviewRequiredTitle, StageReviewRequired80:
		return true
	}
	return false
}

// TitleStatus is the canonical persisted form; DisplayTitleStatus maps it to
// the labels collaborating systems show ("Clean/Blue" etc).
type TitleStatus string

const (
	TitleClean   TitleStatus = "clean"
	TitleMissing TitleStatus = "missing"
	TitleLien    TitleStatus = "lien"
	TitleOther   TitleStatus = "other"
)

// ParseTitleStatus accepts both the canonical values and the display labels
// used by the chat/UI layer.
func ParseTitleStatus(s string) (TitleStatus, bool) {
	switch s {
	case "clean", "Clean", "Clean/Blue", "blue":
		return TitleClean, true
	case "missing", "Missing":
		return TitleMissing, true
	case "lien", "Lien":
		return TitleLien, true
	case "other", "Other":
		return TitleOther, true
	}
	return "", false
}

func DisplayTitleStatus(ts TitleStatus) string {
	switch ts {
	case TitleClean:
		return "Clean/Blue"
	case TitleMissing:
		return "Missing"
	case TitleLien:
		return "Lien"
	case TitleOther:
		return "Other"
	}
	return string(ts)
}

// Decision classifies the outcome of an accepted event.
type Decision string

const (
	DecisionProceed  Decision = "proceed"
	DecisionBlocked  Decision = "blocked"
	DecisionRejected Decision = "rejected"
)

// StatusLabel is the display label derived from the stage. It is recomputed
// on every stage change and persisted for the UI; it is never an input.
func StatusLabel(s Stage) string {
	switch s {
	case StageDocumentsPending:
		return "Documents Pending"
	case StageInitial:
		return "New"
	case StageReviewRequired:
		return "Review Required"
	case StagePassed70Rule:
		return "Passed 70% Rule"
	case StageReviewRequiredTitle:
		return "Title Review Required"
	case StageInspectionDone:
		return "Inspected"
	case StageReviewRequired80:
		return "Review Required (80% Rule)"
	case StagePassed80Rule:
		return "Ready to Buy"
	case StageContractGenerated:
		return "Under Contract"
	case StageRejected:
		return "Rejected"
	}
	return string(s)
}

type Property struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	PropertyID string `gorm:"size:32;uniqueIndex:ux_properties_property_id_active" json:"property_id"`
	Address    string `gorm:"type:text" json:"address"`

	// Monetary facts are NULL until supplied; the core never defaults them.
	AskingPrice    decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"asking_price"`
	MarketValue    decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"market_value"`
	ARV            decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"arv"`
	RepairEstimate decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"repair_estimate"`

	TitleStatus    TitleStatus `gorm:"type:enum('clean','missing','lien','other');default:'other'" json:"title_status"`
	Status         string      `gorm:"size:64" json:"status"`
	Stage          Stage       `gorm:"column:acquisition_stage;type:enum('documents_pending','initial','review_required','passed_70_rule','review_required_title','inspection_done','review_required_80','passed_80_rule','contract_generated','rejected');default:'initial'" json:"acquisition_stage"`
	StageUpdatedAt time.Time   `gorm:"autoCreateTime" json:"stage_updated_at"`

	// Optimistic-concurrency token; bumped on every versioned save.
	Version uint64 `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy string         `gorm:"size:32" json:"-"`
}

func (Property) TableName() string { return "properties" }

// setStage applies a stage change and keeps the derived label in sync.
func (p *Property) setStage(s Stage, at time.Time) {
	p.Stage = s
	p.Status = StatusLabel(s)
	p.StageUpdatedAt = at
}
