package services_test

import (
	"context"

	"github.com/SscSPs/clonewander/internal/core/domain"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock CloneRepository ---
type MockCloneRepository struct {
	mock.Mock
}

var _ portsrepo.CloneRepositoryFacade = (*MockCloneRepository)(nil)

func (m *MockCloneRepository) FindCloneByID(ctx context.Context, cloneID string) (*domain.Clone, error) {
	args := m.Called(ctx, cloneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clone), args.Error(1)
}

func (m *MockCloneRepository) ListClones(ctx context.Context) ([]domain.Clone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Clone), args.Error(1)
}

func (m *MockCloneRepository) ListClonesByStatus(ctx context.Context, statuses ...domain.CloneStatus) ([]domain.Clone, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Clone), args.Error(1)
}

func (m *MockCloneRepository) SaveClone(ctx context.Context, clone domain.Clone) error {
	args := m.Called(ctx, clone)
	return args.Error(0)
}

func (m *MockCloneRepository) UpdateClone(ctx context.Context, cloneID string, update domain.CloneUpdate) (*domain.Clone, error) {
	args := m.Called(ctx, cloneID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clone), args.Error(1)
}

func (m *MockCloneRepository) DeleteClone(ctx context.Context, cloneID string) error {
	args := m.Called(ctx, cloneID)
	return args.Error(0)
}

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, commit domain.EntryCommit) (bool, error) {
	args := m.Called(ctx, entry, commit)
	return args.Bool(0), args.Error(1)
}
