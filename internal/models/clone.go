package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CloneStatus mirrors the status column.
type CloneStatus string

// Clone is the row shape of the clones table.
type Clone struct {
	CloneID           string          `db:"clone_id"`
	Name              string          `db:"name"`
	Destination       string          `db:"destination"`
	Status            CloneStatus     `db:"status"`
	TravelHours       float64         `db:"travel_hours"`
	ActivityDays      float64         `db:"activity_days"`
	Preferences       string          `db:"preferences"`
	Budget            string          `db:"budget"`
	Pack              string          `db:"pack"`
	IsPremium         bool            `db:"is_premium"`
	DepartureTime     time.Time       `db:"departure_time"`
	ArrivalTime       time.Time       `db:"arrival_time"`
	ActivityEndTime   time.Time       `db:"activity_end_time"`
	LastJournalUpdate *time.Time      `db:"last_journal_update"` // Nullable
	TotalSpend        decimal.Decimal `db:"total_spend"`
	AuditFields
}
