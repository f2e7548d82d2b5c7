package property

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dealflow-backend/internal/repair"
	"dealflow-backend/internal/rules"
)

// Outcome is what an accepted event produced: the stage the property moved
// to, how to report it, and the figures computed along the way (for display
// and for the audit trail). Rule figures are exact; rounding is the DTO
// layer's job.
type Outcome struct {
	PrevStage Stage
	NextStage Stage
	Decision  Decision

	// Eval is set when a deal rule ran (PricesSubmitted, ArvSubmitted).
	Eval *rules.Result

	// Set when an inspection was recorded.
	RepairEstimate decimal.Decimal
	PricedDefects  []string

	// Set on ReviewJustified / Rejected.
	Reason string
}

// Advance applies ev to p. On success p's facts and stage are mutated and
// the outcome describes the transition; on any error p is left untouched.
//
// A failing rule is NOT an error: it lands the property in a review stage
// with Decision blocked, and that is a successfully persisted outcome.
func Advance(p *Property, ev Event, now time.Time) (*Outcome, error) {
	if p.Stage == StageRejected {
		return nil, &StageViolationError{Event: ev.Name(), Required: nil, Actual: p.Stage}
	}

	switch e := ev.(type) {
	case DocumentsConfirmed:
		return advanceDocuments(p, now)
	case PricesSubmitted:
		return advancePrices(p, e, now)
	case InspectionSubmitted:
		return advanceInspection(p, e, now)
	case ArvSubmitted:
		return advanceArv(p, e, now)
	case ReviewJustified:
		return advanceOverride(p, e, now)
	case Rejected:
		return advanceReject(p, e, now)
	}
	return nil, &ValidationError{Field: "event", Message: "unknown event " + ev.Name()}
}

func advanceDocuments(p *Property, now time.Time) (*Outcome, error) {
	if p.Stage != StageDocumentsPending {
		return nil, &StageViolationError{
			Event:    DocumentsConfirmed{}.Name(),
			Required: []Stage{StageDocumentsPending},
			Actual:   p.Stage,
		}
	}
	out := &Outcome{PrevStage: p.Stage, NextStage: StageInitial, Decision: DecisionProceed}
	p.setStage(StageInitial, now)
	return out, nil
}

func advancePrices(p *Property, e PricesSubmitted, now time.Time) (*Outcome, error) {
	if p.Stage != StageInitial {
		return nil, &StageViolationError{
			Event:    e.Name(),
			Required: []Stage{StageInitial},
			Actual:   p.Stage,
		}
	}
	if e.AskingPrice.IsNegative() {
		return nil, &ValidationError{Field: "asking_price", Message: "must be non-negative"}
	}
	if !e.MarketValue.IsPositive() {
		return nil, &ValidationError{Field: "market_value", Message: "must be positive"}
	}

	res := rules.Evaluate70(e.AskingPrice, e.MarketValue)

	next := StagePassed70Rule
	decision := DecisionProceed
	if !res.Pass {
		next = StageReviewRequired
		decision = DecisionBlocked
	}

	p.AskingPrice = decimal.NewNullDecimal(e.AskingPrice)
	p.MarketValue = decimal.NewNullDecimal(e.MarketValue)
	out := &Outcome{PrevStage: p.Stage, NextStage: next, Decision: decision, Eval: &res}
	p.setStage(next, now)
	return out, nil
}

func advanceInspection(p *Property, e InspectionSubmitted, now time.Time) (*Outcome, error) {
	if p.Stage != StagePassed70Rule {
		return nil, &StageViolationError{
			Event:    e.Name(),
			Required: []Stage{StagePassed70Rule},
			Actual:   p.Stage,
		}
	}
	if _, ok := ParseTitleStatus(string(e.TitleStatus)); !ok {
		return nil, &ValidationError{Field: "title_status", Message: "must be one of clean, missing, lien, other"}
	}

	estimate, priced, err := repair.ComputeTotal(e.Defects)
	if err != nil {
		return nil, &ValidationError{Field: "defects", Message: err.Error()}
	}

	next := StageInspectionDone
	decision := DecisionProceed
	if e.TitleStatus != TitleClean {
		next = StageReviewRequiredTitle
		decision = DecisionBlocked
	}

	p.RepairEstimate = decimal.NewNullDecimal(estimate)
	p.TitleStatus = e.TitleStatus
	out := &Outcome{
		PrevStage:      p.Stage,
		NextStage:      next,
		Decision:       decision,
		RepairEstimate: estimate,
		PricedDefects:  priced,
	}
	p.setStage(next, now)
	return out, nil
}

func advanceArv(p *Property, e ArvSubmitted, now time.Time) (*Outcome, error) {
	if p.Stage != StageInspectionDone {
		return nil, &StageViolationError{
			Event:    e.Name(),
			Required: []Stage{StageInspectionDone},
			Actual:   p.Stage,
		}
	}
	if !e.ARV.IsPositive() {
		return nil, &ValidationError{Field: "arv", Message: "must be positive"}
	}
	// Both facts exist by construction once the property reached
	// inspection_done; guard anyway so a corrupt row cannot pass a rule on
	// zero values.
	if !p.AskingPrice.Valid || !p.RepairEstimate.Valid {
		return nil, &ValidationError{Field: "property", Message: "asking price and repair estimate must be recorded before ARV"}
	}

	res := rules.Evaluate80(p.AskingPrice.Decimal, p.RepairEstimate.Decimal, e.ARV)

	next := StagePassed80Rule
	decision := DecisionProceed
	if !res.Pass {
		next = StageReviewRequired80
		decision = DecisionBlocked
	}

	p.ARV = decimal.NewNullDecimal(e.ARV)
	out := &Outcome{PrevStage: p.Stage, NextStage: next, Decision: decision, Eval: &res}
	p.setStage(next, now)
	return out, nil
}

// overrideTarget maps each review stage to the stage a PASS outcome would
// have produced at that point.
func overrideTarget(s Stage) (Stage, bool) {
	switch s {
	case StageReviewRequired:
		return StagePassed70Rule, true
	case StageReviewRequiredTitle:
		return StageInspectionDone, true
	case StageReviewRequired80:
		return StagePassed80Rule, true
	}
	return "", false
}

func advanceOverride(p *Property, e ReviewJustified, now time.Time) (*Outcome, error) {
	if strings.TrimSpace(e.Reason) == "" {
		return nil, &ValidationError{Field: "justification", Message: "must not be empty"}
	}
	target, ok := overrideTarget(p.Stage)
	if !ok {
		return nil, &StageViolationError{
			Event:    e.Name(),
			Required: []Stage{StageReviewRequired, StageReviewRequiredTitle, StageReviewRequired80},
			Actual:   p.Stage,
		}
	}
	out := &Outcome{PrevStage: p.Stage, NextStage: target, Decision: DecisionProceed, Reason: e.Reason}
	p.setStage(target, now)
	return out, nil
}

// CompleteContract moves a ready-to-buy property into contract_generated.
// The coordinator drives it (it also writes the contract row), but the stage
// change lives here with the other transitions. Title cleanliness is
// re-checked at contract time even when it passed at inspection; a stale
// fact must not survive into a signed agreement.
func CompleteContract(p *Property, now time.Time) (*Outcome, error) {
	if p.Stage != StagePassed80Rule {
		return nil, &StageViolationError{
			Event:    "GenerateContract",
			Required: []Stage{StagePassed80Rule},
			Actual:   p.Stage,
		}
	}
	if p.TitleStatus != TitleClean {
		return nil, &PreconditionError{
			Message: fmt.Sprintf("title must be clean at contract time, is %q", DisplayTitleStatus(p.TitleStatus)),
		}
	}
	out := &Outcome{PrevStage: p.Stage, NextStage: StageContractGenerated, Decision: DecisionProceed}
	p.setStage(StageContractGenerated, now)
	return out, nil
}

func advanceReject(p *Property, e Rejected, now time.Time) (*Outcome, error) {
	if p.Stage.Terminal() {
		return nil, &StageViolationError{
			Event:  e.Name(),
			Actual: p.Stage,
		}
	}
	out := &Outcome{PrevStage: p.Stage, NextStage: StageRejected, Decision: DecisionRejected, Reason: e.Reason}
	p.setStage(StageRejected, now)
	return out, nil
}
