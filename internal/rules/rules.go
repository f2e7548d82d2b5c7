package rules

import (
	"github.com/shopspring/decimal"
)

// Status tells callers whether a rule actually ran. A rule that cannot run
// for lack of a denominator is not a failed deal, it is an unanswerable
// question, and the two must never be conflated.
type Status string

const (
	StatusEvaluated        Status = "evaluated"
	StatusInsufficientData Status = "insufficient_data"
)

// Result is the outcome of a single rule evaluation. Threshold and Margin
// are exact (unrounded) decimals; rounding happens at the display edge only.
type Result struct {
	Status    Status          `json:"status"`
	Pass      bool            `json:"pass"`
	Threshold decimal.Decimal `json:"threshold"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Margin    decimal.Decimal `json:"margin"`
}

var (
	ratio70 = decimal.New(70, -2) // 0.70 exact
	ratio80 = decimal.New(80, -2) // 0.80 exact
)

// Evaluate70 applies the 70% soft filter: the deal passes when the asking
// price is at or below 70% of market value (boundary inclusive).
//
// A missing or non-positive market value yields StatusInsufficientData with
// Pass=false and zeroed figures.
func Evaluate70(askingPrice, marketValue decimal.Decimal) Result {
	if !marketValue.IsPositive() {
		return Result{Status: StatusInsufficientData}
	}
	threshold := marketValue.Mul(ratio70)
	return Result{
		Status:    StatusEvaluated,
		Pass:      askingPrice.LessThanOrEqual(threshold),
		Threshold: threshold,
		TotalCost: askingPrice,
		Margin:    threshold.Sub(askingPrice),
	}
}

// Evaluate80 applies the 80% ARV hard filter: the deal passes when
// asking price + repair estimate is at or below 80% of after-repair value
// (boundary inclusive).
func Evaluate80(askingPrice, repairEstimate, arv decimal.Decimal) Result {
	if !arv.IsPositive() {
		return Result{Status: StatusInsufficientData}
	}
	threshold := arv.Mul(ratio80)
	totalCost := askingPrice.Add(repairEstimate)
	return Result{
		Status:    StatusEvaluated,
		Pass:      totalCost.LessThanOrEqual(threshold),
		Threshold: threshold,
		TotalCost: totalCost,
		Margin:    threshold.Sub(totalCost),
	}
}
