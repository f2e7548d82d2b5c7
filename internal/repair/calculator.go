package repair

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Flat per-category repair costs. Repricing is a config/deploy concern, so
// the table is fixed at compile time and never mutated at runtime.
var costTable = map[string]int64{
	"roof":       3000,
	"hvac":       2500,
	"plumbing":   1500,
	"electrical": 2000,
	"flooring":   1200,
	"windows":    1000,
	"skirting":   800,
	"painting":   1000,
	"appliances": 1500,
	"deck":       1000,
}

// UnknownCategoryError flags a defect category outside the price table.
// Rejecting loudly beats a silently undercounted estimate.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown defect category %q", e.Category)
}

// ComputeTotal sums the flat cost of each distinct defect category and
// returns the total alongside the deduplicated, sorted category list that
// was actually priced. Duplicates count once; an unknown category aborts
// the whole computation.
func ComputeTotal(defects []string) (decimal.Decimal, []string, error) {
	seen := make(map[string]struct{}, len(defects))
	total := decimal.Zero
	for _, cat := range defects {
		if _, dup := seen[cat]; dup {
			continue
		}
		cost, ok := costTable[cat]
		if !ok {
			return decimal.Zero, nil, &UnknownCategoryError{Category: cat}
		}
		seen[cat] = struct{}{}
		total = total.Add(decimal.NewFromInt(cost))
	}

	priced := make([]string, 0, len(seen))
	for cat := range seen {
		priced = append(priced, cat)
	}
	sort.Strings(priced)
	return total, priced, nil
}

// Categories lists every priced defect category in sorted order.
func Categories() []string {
	out := make([]string, 0, len(costTable))
	for cat := range costTable {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Cost returns the flat cost for a single category.
func Cost(category string) (decimal.Decimal, bool) {
	c, ok := costTable[category]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(c), true
}
