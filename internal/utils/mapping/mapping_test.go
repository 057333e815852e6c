package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCloneMappingKeepsEveryField(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(10 * time.Second)
	d := domain.Clone{
		CloneID:           "c1",
		Name:              "Ada",
		Destination:       "Lisbon",
		Status:            domain.StatusActive,
		TravelHours:       4.5,
		ActivityDays:      2,
		Preferences:       "tiles",
		Budget:            domain.BudgetHigh,
		Pack:              "foodie-explorer",
		IsPremium:         true,
		DepartureTime:     now,
		ArrivalTime:       now.Add(10 * time.Second),
		ActivityEndTime:   now.Add(118 * time.Second),
		LastJournalUpdate: &last,
		TotalSpend:        decimal.RequireFromString("42.50"),
		AuditFields:       domain.AuditFields{CreatedAt: now, CreatedBy: "u", LastUpdatedAt: now, LastUpdatedBy: "u"},
	}

	assert.Equal(t, d, ToDomainClone(ToModelClone(d)))
}

func TestJournalEntryMappingKeepsDedupeKey(t *testing.T) {
	d := domain.JournalEntry{EntryID: "e1", CloneID: "c1", Moment: domain.MomentMidDay, Day: 3, DedupeKey: "mid-day:3"}
	m := ToModelJournalEntry(d)

	assert.Equal(t, "mid-day", m.Moment)
	assert.Equal(t, d, ToDomainJournalEntry(m))
}
