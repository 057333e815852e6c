package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CloneStatus is the lifecycle state of a clone.
type CloneStatus string

const (
	StatusTraveling CloneStatus = "traveling"
	StatusActive    CloneStatus = "active"
	StatusFinished  CloneStatus = "finished"
	StatusDismissed CloneStatus = "dismissed"
)

// IsTerminal reports whether no further entries may be generated.
func (s CloneStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusDismissed
}

func (s CloneStatus) IsValid() bool {
	switch s {
	case StatusTraveling, StatusActive, StatusFinished, StatusDismissed:
		return true
	}
	return false
}

// NonTerminalStatuses are the statuses the poller visits.
var NonTerminalStatuses = []CloneStatus{StatusTraveling, StatusActive}

// Clone is a simulated traveler. The three trip instants are computed once at
// creation and never recomputed.
type Clone struct {
	CloneID           string          `json:"cloneID"`
	Name              string          `json:"name"`
	Destination       string          `json:"destination"`
	Status            CloneStatus     `json:"status"`
	TravelHours       float64         `json:"travelHours"`
	ActivityDays      float64         `json:"activityDays"`
	Preferences       string          `json:"preferences"`
	Budget            BudgetTier      `json:"budget"`
	Pack              PackID          `json:"pack"`
	IsPremium         bool            `json:"isPremium"`
	DepartureTime     time.Time       `json:"departureTime"`
	ArrivalTime       time.Time       `json:"arrivalTime"`
	ActivityEndTime   time.Time       `json:"activityEndTime"`
	LastJournalUpdate *time.Time      `json:"lastJournalUpdate,omitempty"`
	TotalSpend        decimal.Decimal `json:"totalSpend"`
	AuditFields
}

// TotalDays is the number of simulated days the activity phase spans.
func (c Clone) TotalDays() int {
	days := int(math.Ceil(c.ActivityDays))
	if days < 1 {
		return 1
	}
	return days
}

// CloneUpdate is a partial update. Nil fields are left untouched.
type CloneUpdate struct {
	Status            *CloneStatus
	LastJournalUpdate *time.Time
	LastUpdatedAt     time.Time
	LastUpdatedBy     string
}
