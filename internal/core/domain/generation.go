package domain

import "github.com/shopspring/decimal"

// GenerationRequest is everything a text generator is told about the entry it writes.
type GenerationRequest struct {
	CloneName      string
	Destination    string
	Moment         Moment
	Day            int
	TotalDays      int
	Budget         BudgetTier
	Pack           PackID
	Preferences    string
	TimeOfDay      string
	IsFinalSummary bool
	TravelHours    float64
	ActivityDays   float64
}

// GeneratedEntry is the generator's output.
type GeneratedEntry struct {
	Message string
	Cost    decimal.Decimal
}
