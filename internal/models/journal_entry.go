package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the row shape of the journal_entries table.
type JournalEntry struct {
	EntryID   string          `db:"entry_id"`
	CloneID   string          `db:"clone_id"`
	Moment    string          `db:"moment"`
	Day       int             `db:"day"`
	Message   string          `db:"message"`
	Cost      decimal.Decimal `db:"cost"`
	Timestamp time.Time       `db:"entry_timestamp"`
	DedupeKey string          `db:"dedupe_key"`
	CreatedAt time.Time       `db:"created_at"`
}
