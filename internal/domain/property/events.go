package property

import (
	"github.com/shopspring/decimal"
)

// Event is the closed set of facts that can move a property through the
// acquisition workflow. Advance switches over it exhaustively, so adding a
// variant forces every transition site to be revisited.
type Event interface {
	Name() string
	isEvent()
}

// DocumentsConfirmed moves a property out of the optional documents_pending
// pre-stage.
type DocumentsConfirmed struct{}

func (DocumentsConfirmed) Name() string { return "DocumentsConfirmed" }
func (DocumentsConfirmed) isEvent()     {}

// PricesSubmitted supplies asking price and market value and triggers the
// 70% rule.
type PricesSubmitted struct {
	AskingPrice decimal.Decimal
	MarketValue decimal.Decimal
}

func (PricesSubmitted) Name() string { return "PricesSubmitted" }
func (PricesSubmitted) isEvent()     {}

// InspectionSubmitted records an inspection: defect categories, the title
// status observed on site, and free-text notes.
type InspectionSubmitted struct {
	Defects     []string
	TitleStatus TitleStatus
	Notes       string
}

func (InspectionSubmitted) Name() string { return "InspectionSubmitted" }
func (InspectionSubmitted) isEvent()     {}

// ArvSubmitted supplies the after-repair value and triggers the 80% rule.
type ArvSubmitted struct {
	ARV decimal.Decimal
}

func (ArvSubmitted) Name() string { return "ArvSubmitted" }
func (ArvSubmitted) isEvent()     {}

// ReviewJustified is a human override out of a review_required* stage. The
// justification is mandatory and persisted; an override without a reason is
// a validation error, not a judgement call.
type ReviewJustified struct {
	Reason string
}

func (ReviewJustified) Name() string { return "ReviewJustified" }
func (ReviewJustified) isEvent()     {}

// Rejected permanently kills the deal from any non-terminal stage.
type Rejected struct {
	Reason string
}

func (Rejected) Name() string { return "Rejected" }
func (Rejected) isEvent()     {}
