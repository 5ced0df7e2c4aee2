// Package services provides the HPP (cost of goods) calculation core along
// with validation, formatting, and import/export utilities around it.
package services

import (
	"math"
	"sort"
	"strings"
)

// DefaultTopContributors is how many ingredients TopContributors returns
// when no explicit count is given.
const DefaultTopContributors = 3

// MarginStatus classifies the actual margin against the target.
type MarginStatus string

const (
	MarginSuccess MarginStatus = "success" // actual >= target
	MarginWarning MarginStatus = "warning" // within 5 points below target
	MarginDanger  MarginStatus = "danger"  // more than 5 points below target
)

// Ingredient is one material line as entered by the caller.
type Ingredient struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// IngredientCost is an ingredient with its derived cost figures attached.
type IngredientCost struct {
	Ingredient
	LineCost            float64 `json:"line_cost"`
	ContributionPercent float64 `json:"contribution_percent"`
}

// CalcInput carries everything a single calculation needs. The core keeps
// no state between calls; callers own their form/session data.
type CalcInput struct {
	Ingredients         []Ingredient `json:"ingredients"`
	OutputUnits         int          `json:"output_units"`
	TargetMarginPercent float64      `json:"target_margin_percent"`
	ActualSellingPrice  float64      `json:"actual_selling_price"`
	OperationalCost     float64      `json:"operational_cost"`
	OtherCost           float64      `json:"other_cost"`
}

// CalcResult is the full output of one calculation.
type CalcResult struct {
	Ingredients              []IngredientCost `json:"ingredients"`
	MaterialCost             float64          `json:"material_cost"`
	OperationalCost          float64          `json:"operational_cost"`
	OtherCost                float64          `json:"other_cost"`
	OperationalContribution  float64          `json:"operational_contribution"`
	OtherContribution        float64          `json:"other_contribution"`
	TotalBatchCost           float64          `json:"total_batch_cost"`
	OutputUnits              int              `json:"output_units"`
	TargetMarginPercent      float64          `json:"target_margin_percent"`
	HPPPerUnit               float64          `json:"hpp_per_unit"`
	SuggestedSellingPrice    float64          `json:"suggested_selling_price"`
	ActualSellingPrice       float64          `json:"actual_selling_price"`
	ActualMarginPercent      float64          `json:"actual_margin_percent"`
	GapVsTarget              float64          `json:"gap_vs_target"`
	Status                   MarginStatus     `json:"margin_status"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineCost computes the cost of a single ingredient line, rounded to two
// decimals. Non-positive quantity or price means the line costs nothing;
// rejecting such rows is the validator's job, not this function's.
func LineCost(quantity, pricePerUnit float64) float64 {
	if quantity <= 0 || pricePerUnit <= 0 {
		return 0
	}
	return round2(quantity * pricePerUnit)
}

// HPPPerUnit divides the total batch cost across output units.
// Degrades to 0 on a non-positive unit count.
func HPPPerUnit(totalBatchCost float64, outputUnits int) float64 {
	if outputUnits <= 0 {
		return 0
	}
	return round2(totalBatchCost / float64(outputUnits))
}

// SuggestedPrice applies the target margin as a markup on cost:
// price = hpp + hpp * margin/100.
func SuggestedPrice(hppPerUnit, targetMarginPercent float64) float64 {
	if hppPerUnit <= 0 {
		return 0
	}
	return round2(hppPerUnit + hppPerUnit*targetMarginPercent/100)
}

// MarginOnPrice is the margin relative to the selling price:
// (price - hpp) / price * 100.
func MarginOnPrice(hppPerUnit, sellingPrice float64) float64 {
	if sellingPrice <= 0 || hppPerUnit <= 0 {
		return 0
	}
	return round2((sellingPrice - hppPerUnit) / sellingPrice * 100)
}

// MarkupOnCost is the margin relative to cost: (price - hpp) / hpp * 100.
// This is the figure compared against the target margin, matching the
// markup convention SuggestedPrice uses. MarginOnPrice exists as well but
// must not be substituted here; the two diverge for any nonzero margin.
func MarkupOnCost(hppPerUnit, sellingPrice float64) float64 {
	if hppPerUnit <= 0 {
		return 0
	}
	return round2((sellingPrice - hppPerUnit) / hppPerUnit * 100)
}

// ContributionPercent is an ingredient's share of the total batch cost.
func ContributionPercent(lineCost, totalBatchCost float64) float64 {
	if totalBatchCost <= 0 {
		return 0
	}
	return round2(lineCost / totalBatchCost * 100)
}

// ClassifyMargin grades the actual margin against the target. The warning
// band is inclusive at exactly target-5.
func ClassifyMargin(actualMarginPercent, targetMarginPercent float64) MarginStatus {
	switch {
	case actualMarginPercent >= targetMarginPercent:
		return MarginSuccess
	case actualMarginPercent >= targetMarginPercent-5:
		return MarginWarning
	default:
		return MarginDanger
	}
}

// Calculate runs the full pipeline: line costs, batch aggregation,
// contributions, HPP per unit, suggested price, and the actual-margin
// comparison. Blank-named ingredient rows are skipped. Inputs are assumed
// to have passed ValidateIngredients; degenerate values degrade to zero
// rather than failing.
func Calculate(in CalcInput) CalcResult {
	costs := make([]IngredientCost, 0, len(in.Ingredients))
	var materialCost float64

	for _, ing := range in.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		if ing.Name == "" {
			continue
		}
		lc := LineCost(ing.Quantity, ing.PricePerUnit)
		materialCost += lc
		costs = append(costs, IngredientCost{Ingredient: ing, LineCost: lc})
	}

	materialCost = round2(materialCost)
	totalBatchCost := materialCost + in.OperationalCost + in.OtherCost

	// Contributions need the total, so this is a second pass.
	for i := range costs {
		costs[i].ContributionPercent = ContributionPercent(costs[i].LineCost, totalBatchCost)
	}

	hpp := HPPPerUnit(totalBatchCost, in.OutputUnits)
	suggested := SuggestedPrice(hpp, in.TargetMarginPercent)

	actualPrice := in.ActualSellingPrice
	var actualMargin float64
	if actualPrice > 0 {
		actualMargin = MarkupOnCost(hpp, actualPrice)
	} else {
		// No actual price given: the suggestion stands, so the gap is zero
		// by construction.
		actualPrice = suggested
		actualMargin = in.TargetMarginPercent
	}

	return CalcResult{
		Ingredients:             costs,
		MaterialCost:            materialCost,
		OperationalCost:         in.OperationalCost,
		OtherCost:               in.OtherCost,
		OperationalContribution: ContributionPercent(in.OperationalCost, totalBatchCost),
		OtherContribution:       ContributionPercent(in.OtherCost, totalBatchCost),
		TotalBatchCost:          totalBatchCost,
		OutputUnits:             in.OutputUnits,
		TargetMarginPercent:     in.TargetMarginPercent,
		HPPPerUnit:              hpp,
		SuggestedSellingPrice:   suggested,
		ActualSellingPrice:      actualPrice,
		ActualMarginPercent:     actualMargin,
		GapVsTarget:             round2(actualMargin - in.TargetMarginPercent),
		Status:                  ClassifyMargin(actualMargin, in.TargetMarginPercent),
	}
}

// TopContributors returns the n costliest named ingredients, descending by
// line cost. Ties keep their original order. n <= 0 means
// DefaultTopContributors.
func TopContributors(costs []IngredientCost, n int) []IngredientCost {
	if n <= 0 {
		n = DefaultTopContributors
	}

	top := make([]IngredientCost, 0, len(costs))
	for _, c := range costs {
		if c.Name != "" && c.LineCost > 0 {
			top = append(top, c)
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].LineCost > top[j].LineCost
	})

	if len(top) > n {
		top = top[:n]
	}
	return top
}
