package mapping

import (
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:   d.EntryID,
		CloneID:   d.CloneID,
		Moment:    string(d.Moment),
		Day:       d.Day,
		Message:   d.Message,
		Cost:      d.Cost,
		Timestamp: d.Timestamp,
		DedupeKey: d.DedupeKey,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:   m.EntryID,
		CloneID:   m.CloneID,
		Moment:    domain.Moment(m.Moment),
		Day:       m.Day,
		Message:   m.Message,
		Cost:      m.Cost,
		Timestamp: m.Timestamp,
		DedupeKey: m.DedupeKey,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
