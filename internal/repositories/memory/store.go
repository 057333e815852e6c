// Package memory is an in-process store for development and tests. Nothing
// survives a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/guard"
	"github.com/SscSPs/clonewander/internal/core/lifecycle"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// Store keeps clones and their journals behind a single mutex, so the
// duplicate guard and the insert it protects run as one critical section.
type Store struct {
	mu      sync.RWMutex
	guard   guard.Guard
	clones  map[string]*domain.Clone
	entries map[string][]domain.JournalEntry
	now     func() time.Time
}

var _ portsrepo.CloneRepositoryFacade = (*Store)(nil)
var _ portsrepo.JournalEntryRepositoryFacade = (*Store)(nil)

// NewStore creates an empty Store that rejects duplicates according to g.
func NewStore(g guard.Guard) *Store {
	return &Store{
		guard:   g,
		clones:  make(map[string]*domain.Clone),
		entries: make(map[string][]domain.JournalEntry),
		now:     time.Now,
	}
}

// NewRepositoryProvider exposes a Store through the repository provider.
func NewRepositoryProvider(s *Store) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{CloneRepo: s, JournalRepo: s}
}

func (s *Store) SaveClone(ctx context.Context, clone domain.Clone) error {
	if clone.CloneID == "" {
		return fmt.Errorf("%w: clone id is required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clones[clone.CloneID]; exists {
		return fmt.Errorf("%w: clone %s", apperrors.ErrDuplicate, clone.CloneID)
	}
	stored := cloneCopy(clone)
	s.clones[clone.CloneID] = &stored
	return nil
}

func (s *Store) FindCloneByID(ctx context.Context, cloneID string) (*domain.Clone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clones[cloneID]
	if !ok {
		return nil, fmt.Errorf("clone %s: %w", cloneID, apperrors.ErrNotFound)
	}
	out := cloneCopy(*c)
	return &out, nil
}

func (s *Store) ListClones(ctx context.Context) ([]domain.Clone, error) {
	return s.listClones(func(domain.Clone) bool { return true }), nil
}

func (s *Store) ListClonesByStatus(ctx context.Context, statuses ...domain.CloneStatus) ([]domain.Clone, error) {
	want := make(map[domain.CloneStatus]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	return s.listClones(func(c domain.Clone) bool { return want[c.Status] }), nil
}

func (s *Store) listClones(keep func(domain.Clone) bool) []domain.Clone {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Clone, 0, len(s.clones))
	for _, c := range s.clones {
		if keep(*c) {
			out = append(out, cloneCopy(*c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CloneID > out[j].CloneID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) UpdateClone(ctx context.Context, cloneID string, update domain.CloneUpdate) (*domain.Clone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clones[cloneID]
	if !ok {
		return nil, fmt.Errorf("clone %s: %w", cloneID, apperrors.ErrNotFound)
	}
	if update.Status != nil && *update.Status != c.Status {
		if err := checkTransition(c, *update.Status); err != nil {
			return nil, err
		}
		c.Status = *update.Status
	}
	if update.LastJournalUpdate != nil {
		advanceLastUpdate(c, *update.LastJournalUpdate)
	}
	c.LastUpdatedAt = update.LastUpdatedAt
	if c.LastUpdatedAt.IsZero() {
		c.LastUpdatedAt = s.now()
	}
	if update.LastUpdatedBy != "" {
		c.LastUpdatedBy = update.LastUpdatedBy
	}

	out := cloneCopy(*c)
	return &out, nil
}

func (s *Store) DeleteClone(ctx context.Context, cloneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clones[cloneID]; !ok {
		return fmt.Errorf("clone %s: %w", cloneID, apperrors.ErrNotFound)
	}
	delete(s.clones, cloneID)
	delete(s.entries, cloneID)
	return nil
}

func (s *Store) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, commit domain.EntryCommit) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clones[entry.CloneID]
	if !ok {
		return false, fmt.Errorf("clone %s: %w", entry.CloneID, apperrors.ErrNotFound)
	}
	if c.Status.IsTerminal() {
		return false, fmt.Errorf("clone %s is %s: %w", c.CloneID, c.Status, apperrors.ErrTerminal)
	}
	if commit.Advance != nil {
		if err := checkTransition(c, *commit.Advance); err != nil {
			return false, err
		}
	}
	if s.guard.Conflicts(s.entries[entry.CloneID], entry) {
		return false, nil
	}

	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	entry.DedupeKey = s.guard.Key(entry)
	s.entries[entry.CloneID] = append(s.entries[entry.CloneID], entry)

	c.TotalSpend = c.TotalSpend.Add(entry.Cost)
	advanceLastUpdate(c, entry.Timestamp)
	if commit.Advance != nil {
		c.Status = *commit.Advance
	}
	c.LastUpdatedAt = entry.CreatedAt
	return true, nil
}

func (s *Store) ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.JournalEntry
	for cloneID, entries := range s.entries {
		if filter.CloneID != nil && *filter.CloneID != cloneID {
			continue
		}
		for _, e := range entries {
			if filter.Moment != nil && *filter.Moment != e.Moment {
				continue
			}
			if !beforeCursor(e, filter) {
				continue
			}
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	if out == nil {
		out = []domain.JournalEntry{}
	}
	return out, nil
}

func beforeCursor(e domain.JournalEntry, filter domain.JournalFilter) bool {
	if filter.BeforeTimestamp == nil {
		return true
	}
	if e.Timestamp.Before(*filter.BeforeTimestamp) {
		return true
	}
	if !e.Timestamp.Equal(*filter.BeforeTimestamp) {
		return false
	}
	return filter.BeforeCreatedAt != nil && e.CreatedAt.Before(*filter.BeforeCreatedAt)
}

func checkTransition(c *domain.Clone, to domain.CloneStatus) error {
	if c.Status.IsTerminal() {
		return fmt.Errorf("clone %s is %s: %w", c.CloneID, c.Status, apperrors.ErrTerminal)
	}
	if !lifecycle.CanTransition(c.Status, to) {
		return fmt.Errorf("%w: clone %s cannot move from %s to %s", apperrors.ErrValidation, c.CloneID, c.Status, to)
	}
	return nil
}

func advanceLastUpdate(c *domain.Clone, ts time.Time) {
	if c.LastJournalUpdate == nil || ts.After(*c.LastJournalUpdate) {
		t := ts
		c.LastJournalUpdate = &t
	}
}

func cloneCopy(c domain.Clone) domain.Clone {
	if c.LastJournalUpdate != nil {
		t := *c.LastJournalUpdate
		c.LastJournalUpdate = &t
	}
	return c
}
