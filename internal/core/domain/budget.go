package domain

import "github.com/shopspring/decimal"

// BudgetTier steers both the generated recommendations and their cost.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "budget"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
	BudgetLuxury BudgetTier = "luxury"
)

// BudgetTiers lists the accepted tiers in ascending order.
var BudgetTiers = []BudgetTier{BudgetLow, BudgetMedium, BudgetHigh, BudgetLuxury}

func (b BudgetTier) IsValid() bool {
	for _, t := range BudgetTiers {
		if t == b {
			return true
		}
	}
	return false
}

// CostRange is the typical per-activity spend for the tier.
func (b BudgetTier) CostRange() (decimal.Decimal, decimal.Decimal) {
	switch b {
	case BudgetLow:
		return decimal.NewFromInt(0), decimal.NewFromInt(15)
	case BudgetMedium:
		return decimal.NewFromInt(15), decimal.NewFromInt(50)
	case BudgetHigh:
		return decimal.NewFromInt(50), decimal.NewFromInt(150)
	case BudgetLuxury:
		return decimal.NewFromInt(150), decimal.NewFromInt(400)
	}
	return decimal.Zero, decimal.Zero
}
