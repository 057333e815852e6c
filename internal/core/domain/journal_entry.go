package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Moment labels the point of a simulated day an entry belongs to.
type Moment string

const (
	MomentArrival Moment = "arrival"
	MomentMorning Moment = "morning"
	MomentMidDay  Moment = "mid-day"
	MomentEvening Moment = "evening"
	MomentSummary Moment = "summary"
)

var momentRank = map[Moment]int{
	MomentArrival: 0,
	MomentMorning: 1,
	MomentMidDay:  2,
	MomentEvening: 3,
	MomentSummary: 4,
}

// Rank orders moments within a single day. Unknown moments rank last.
func (m Moment) Rank() int {
	if r, ok := momentRank[m]; ok {
		return r
	}
	return len(momentRank)
}

func (m Moment) IsValid() bool {
	_, ok := momentRank[m]
	return ok
}

// IsLifecycle reports whether the moment is produced by a status transition
// rather than by the update scheduler.
func (m Moment) IsLifecycle() bool {
	return m == MomentArrival || m == MomentSummary
}

// JournalEntry is one generated update. Timestamp is the instant the entry
// represents, CreatedAt the instant it was persisted.
type JournalEntry struct {
	EntryID   string          `json:"entryID"`
	CloneID   string          `json:"cloneID"`
	Moment    Moment          `json:"moment"`
	Day       int             `json:"day"`
	Message   string          `json:"message"`
	Cost      decimal.Decimal `json:"cost"`
	Timestamp time.Time       `json:"timestamp"`
	CreatedAt time.Time       `json:"createdAt"`
	DedupeKey string          `json:"-"`
}

// JournalFilter narrows a journal listing. Results are ordered by timestamp
// descending, then createdAt descending. The Before* pair is an exclusive cursor.
type JournalFilter struct {
	CloneID         *string
	Moment          *Moment
	BeforeTimestamp *time.Time
	BeforeCreatedAt *time.Time
	Limit           int
}

// EntryCommit describes clone-side effects applied atomically with an entry insert.
type EntryCommit struct {
	// Advance, when set, moves the clone to this status in the same write.
	Advance *CloneStatus
}
