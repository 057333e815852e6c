package repositories

import (
	"context"

	"github.com/SscSPs/clonewander/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries
type JournalEntryReader interface {
	// ListJournalEntries retrieves entries matching filter, newest first.
	ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries
type JournalEntryWriter interface {
	// SaveJournalEntry runs the duplicate guard and, if it passes, inserts the
	// entry, adds its cost to the clone's total spend, moves lastJournalUpdate
	// forward and applies commit, all as one write.
	//
	// It returns false with a nil error when the guard rejects the entry,
	// apperrors.ErrNotFound when the clone is gone and apperrors.ErrTerminal
	// when the clone no longer accepts entries.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, commit domain.EntryCommit) (bool, error)
}

// JournalEntryRepositoryFacade combines all journal entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
