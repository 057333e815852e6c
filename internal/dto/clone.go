package dto

import (
	"time"

	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCloneRequest is the payload for dispatching a new clone.
// TravelHours may be omitted, in which case it is estimated from the destination.
type CreateCloneRequest struct {
	Name         string            `json:"name" binding:"required,max=80"`
	Destination  string            `json:"destination" binding:"required,max=120"`
	TravelHours  *float64          `json:"travelHours" binding:"omitempty,gte=0,lte=72"`
	ActivityDays float64           `json:"activityDays" binding:"required,gt=0,lte=30"`
	Preferences  string            `json:"preferences" binding:"max=500"`
	Budget       domain.BudgetTier `json:"budget" binding:"required,budget_tier"`
	Pack         domain.PackID     `json:"pack" binding:"omitempty,adventure_pack"`
	IsPremium    bool              `json:"isPremium"`
}

// CloneResponse is a clone plus its derived trip position.
type CloneResponse struct {
	domain.Clone
	Simulated     clock.SimulatedTime `json:"simulated"`
	TimeRemaining string              `json:"timeRemaining,omitempty"`
}

// ListClonesResponse wraps a clone listing.
type ListClonesResponse struct {
	Clones []CloneResponse `json:"clones"`
}

// DaySpend is the spend recorded for one simulated day.
type DaySpend struct {
	Day     int             `json:"day"`
	Entries int             `json:"entries"`
	Spend   decimal.Decimal `json:"spend"`
}

// TripReport summarises a clone's journal.
type TripReport struct {
	CloneID     string             `json:"cloneID"`
	Name        string             `json:"name"`
	Destination string             `json:"destination"`
	Status      domain.CloneStatus `json:"status"`
	EntryCount  int                `json:"entryCount"`
	TotalSpend  decimal.Decimal    `json:"totalSpend"`
	SpendByDay  []DaySpend         `json:"spendByDay"`
	Summary     *string            `json:"summary,omitempty"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// ToCloneResponse derives the simulated position of c at now.
func ToCloneResponse(c domain.Clone, now time.Time, ac clock.Accelerated) CloneResponse {
	resp := CloneResponse{
		Clone:     c,
		Simulated: ac.Simulate(now, c.ArrivalTime, c.ActivityEndTime),
	}
	switch c.Status {
	case domain.StatusTraveling:
		resp.TimeRemaining = clock.FormatRemaining(c.ArrivalTime.Sub(now))
	case domain.StatusActive:
		resp.TimeRemaining = clock.FormatRemaining(c.ActivityEndTime.Sub(now))
	}
	return resp
}

// ToCloneResponses converts a slice of clones.
func ToCloneResponses(clones []domain.Clone, now time.Time, ac clock.Accelerated) []CloneResponse {
	responses := make([]CloneResponse, len(clones))
	for i, c := range clones {
		responses[i] = ToCloneResponse(c, now, ac)
	}
	return responses
}
