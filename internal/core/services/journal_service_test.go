package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/core/services"
	"github.com/SscSPs/clonewander/internal/dto"
	"github.com/SscSPs/clonewander/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	journalRepo *MockJournalEntryRepository
	cloneRepo   *MockCloneRepository
	service     portssvc.JournalSvcFacade
	ctx         context.Context
	base        time.Time
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.journalRepo = new(MockJournalEntryRepository)
	s.cloneRepo = new(MockCloneRepository)
	s.service = services.NewJournalService(s.journalRepo, s.cloneRepo)
	s.ctx = context.Background()
	s.base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *JournalServiceTestSuite) TearDownTest() {
	s.journalRepo.AssertExpectations(s.T())
	s.cloneRepo.AssertExpectations(s.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) entries(n int) []domain.JournalEntry {
	out := make([]domain.JournalEntry, n)
	for i := range out {
		ts := s.base.Add(-time.Duration(i) * time.Second)
		out[i] = domain.JournalEntry{
			EntryID:   "e" + string(rune('a'+i)),
			CloneID:   "c1",
			Moment:    domain.MomentMorning,
			Day:       1,
			Cost:      decimal.NewFromInt(5),
			Timestamp: ts,
			CreatedAt: ts.Add(time.Millisecond),
		}
	}
	return out
}

func (s *JournalServiceTestSuite) TestListJournalEntries_DefaultsAndLastPage() {
	s.journalRepo.On("ListJournalEntries", s.ctx, domain.JournalFilter{Limit: services.DefaultJournalPageSize + 1}).
		Return(s.entries(3), nil).Once()

	resp, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{})
	s.Require().NoError(err)
	s.Len(resp.Entries, 3)
	s.Nil(resp.NextToken)
}

func (s *JournalServiceTestSuite) TestListJournalEntries_IssuesNextToken() {
	cloneID := "c1"
	all := s.entries(3)
	s.cloneRepo.On("FindCloneByID", s.ctx, cloneID).Return(&domain.Clone{CloneID: cloneID}, nil).Once()
	s.journalRepo.On("ListJournalEntries", s.ctx, mock.MatchedBy(func(f domain.JournalFilter) bool {
		return f.Limit == 3 && f.CloneID != nil && *f.CloneID == cloneID && f.BeforeTimestamp == nil
	})).Return(all, nil).Once()

	resp, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{CloneID: cloneID, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(resp.Entries, 2)
	s.Require().NotNil(resp.NextToken)

	ts, createdAt, err := pagination.DecodeToken(*resp.NextToken)
	s.Require().NoError(err)
	s.True(all[1].Timestamp.Equal(ts))
	s.True(all[1].CreatedAt.Equal(createdAt))
}

func (s *JournalServiceTestSuite) TestListJournalEntries_FollowsToken() {
	token := pagination.EncodeToken(s.base, s.base.Add(time.Millisecond))
	moment := domain.MomentEvening
	s.journalRepo.On("ListJournalEntries", s.ctx, mock.MatchedBy(func(f domain.JournalFilter) bool {
		return f.BeforeTimestamp != nil && f.BeforeTimestamp.Equal(s.base) &&
			f.BeforeCreatedAt != nil && f.BeforeCreatedAt.Equal(s.base.Add(time.Millisecond)) &&
			f.Moment != nil && *f.Moment == moment
	})).Return([]domain.JournalEntry{}, nil).Once()

	resp, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{Moment: "evening", NextToken: &token})
	s.Require().NoError(err)
	s.Empty(resp.Entries)
	s.Nil(resp.NextToken)
}

func (s *JournalServiceTestSuite) TestListJournalEntries_ClampsLimit() {
	s.journalRepo.On("ListJournalEntries", s.ctx, domain.JournalFilter{Limit: services.MaxJournalPageSize + 1}).
		Return([]domain.JournalEntry{}, nil).Once()

	_, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{Limit: 1000})
	s.NoError(err)
}

func (s *JournalServiceTestSuite) TestListJournalEntries_InvalidToken() {
	bad := "%%%not-a-token"
	_, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{NextToken: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrInvalidNextToken)
}

func (s *JournalServiceTestSuite) TestListJournalEntries_UnknownMoment() {
	_, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{Moment: "night"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestListJournalEntries_UnknownClone() {
	s.cloneRepo.On("FindCloneByID", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{CloneID: "ghost"})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestListJournalEntries_RepositoryError() {
	s.journalRepo.On("ListJournalEntries", s.ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{})
	s.Error(err)
}

func (s *JournalServiceTestSuite) TestEntriesForClone() {
	cloneID := "c1"
	s.journalRepo.On("ListJournalEntries", s.ctx, domain.JournalFilter{CloneID: &cloneID}).Return(s.entries(2), nil).Once()

	entries, err := s.service.EntriesForClone(s.ctx, cloneID)
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *JournalServiceTestSuite) TestSaveJournalEntry() {
	active := domain.StatusActive
	entry := domain.JournalEntry{CloneID: "c1", Moment: domain.MomentArrival, Day: 1, Cost: decimal.NewFromInt(12)}
	s.journalRepo.On("SaveJournalEntry", s.ctx, entry, domain.EntryCommit{Advance: &active}).Return(true, nil).Once()

	saved, err := s.service.SaveJournalEntry(s.ctx, entry, &active)
	s.NoError(err)
	s.True(saved)
}

func (s *JournalServiceTestSuite) TestSaveJournalEntry_Duplicate() {
	entry := domain.JournalEntry{CloneID: "c1", Moment: domain.MomentMorning, Day: 1, Cost: decimal.Zero}
	s.journalRepo.On("SaveJournalEntry", s.ctx, entry, domain.EntryCommit{}).Return(false, nil).Once()

	saved, err := s.service.SaveJournalEntry(s.ctx, entry, nil)
	s.NoError(err)
	s.False(saved)
}

func (s *JournalServiceTestSuite) TestSaveJournalEntry_Rejected() {
	_, err := s.service.SaveJournalEntry(s.ctx, domain.JournalEntry{Moment: "night"}, nil)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.SaveJournalEntry(s.ctx, domain.JournalEntry{Moment: domain.MomentMorning, Cost: decimal.NewFromInt(-1)}, nil)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestSaveJournalEntry_TerminalClone() {
	entry := domain.JournalEntry{CloneID: "c1", Moment: domain.MomentEvening, Day: 2}
	s.journalRepo.On("SaveJournalEntry", s.ctx, entry, domain.EntryCommit{}).Return(false, apperrors.ErrTerminal).Once()

	_, err := s.service.SaveJournalEntry(s.ctx, entry, nil)
	s.ErrorIs(err, apperrors.ErrTerminal)
}
