package services

import (
	"context"

	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// ListJournalEntries retrieves a page of entries, newest first.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// EntriesForClone retrieves every entry of a clone.
	EntriesForClone(ctx context.Context, cloneID string) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// SaveJournalEntry persists entry unless it duplicates an existing one, in
	// which case it returns false. A non-nil advance moves the clone's status in
	// the same write.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, advance *domain.CloneStatus) (bool, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// JournalGenerator writes the text and cost of one journal entry.
// Errors wrap apperrors.ErrGeneration.
type JournalGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GeneratedEntry, error)
}
