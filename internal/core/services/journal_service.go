package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/dto"
	"github.com/SscSPs/clonewander/internal/middleware"
	"github.com/SscSPs/clonewander/internal/utils/pagination"
)

const (
	DefaultJournalPageSize = 20
	MaxJournalPageSize     = 100
)

var ErrInvalidNextToken = errors.New("invalid pagination token")

// journalService exposes the journal to the API and the poller.
type journalService struct {
	journalRepo portsrepo.JournalEntryRepositoryFacade
	cloneRepo   portsrepo.CloneReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalEntryRepositoryFacade, cloneRepo portsrepo.CloneReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		cloneRepo:   cloneRepo,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// ListJournalEntries returns one page of entries, newest first, optionally
// narrowed to a clone and a moment.
func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultJournalPageSize
	}
	if limit > MaxJournalPageSize {
		limit = MaxJournalPageSize
	}
	// One extra row tells whether another page exists.
	filter := domain.JournalFilter{Limit: limit + 1}

	if params.CloneID != "" {
		if _, err := s.cloneRepo.FindCloneByID(ctx, params.CloneID); err != nil {
			return nil, fmt.Errorf("failed to find clone %s: %w", params.CloneID, err)
		}
		cloneID := params.CloneID
		filter.CloneID = &cloneID
	}
	if params.Moment != "" {
		moment := domain.Moment(params.Moment)
		if !moment.IsValid() {
			return nil, fmt.Errorf("%w: unknown moment %q", apperrors.ErrValidation, params.Moment)
		}
		filter.Moment = &moment
	}
	if params.NextToken != nil && *params.NextToken != "" {
		ts, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: %v", apperrors.ErrValidation, ErrInvalidNextToken, err)
		}
		filter.BeforeTimestamp = &ts
		filter.BeforeCreatedAt = &createdAt
	}

	entries, err := s.journalRepo.ListJournalEntries(ctx, filter)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalEntriesResponse{}
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.Timestamp, last.CreatedAt)
		resp.NextToken = &token
	}
	resp.Entries = dto.ToJournalEntryResponses(entries)
	return resp, nil
}

func (s *journalService) EntriesForClone(ctx context.Context, cloneID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListJournalEntries(ctx, domain.JournalFilter{CloneID: &cloneID})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries for clone %s: %w", cloneID, err)
	}
	return entries, nil
}

// SaveJournalEntry persists entry, optionally advancing the clone's status in
// the same write. It returns false without error for duplicates.
func (s *journalService) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, advance *domain.CloneStatus) (bool, error) {
	if !entry.Moment.IsValid() {
		return false, fmt.Errorf("%w: unknown moment %q", apperrors.ErrValidation, entry.Moment)
	}
	if entry.Cost.IsNegative() {
		return false, fmt.Errorf("%w: cost must not be negative", apperrors.ErrValidation)
	}

	saved, err := s.journalRepo.SaveJournalEntry(ctx, entry, domain.EntryCommit{Advance: advance})
	if err != nil {
		return false, fmt.Errorf("failed to save journal entry: %w", err)
	}
	if !saved {
		middleware.GetLoggerFromCtx(ctx).Debug("Duplicate journal entry rejected",
			slog.String("clone_id", entry.CloneID),
			slog.String("moment", string(entry.Moment)),
			slog.Int("day", entry.Day))
	}
	return saved, nil
}
