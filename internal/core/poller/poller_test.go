package poller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/clonewander/internal/adapters/generator"
	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/guard"
	"github.com/SscSPs/clonewander/internal/core/poller"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	"github.com/SscSPs/clonewander/internal/core/schedule"
	"github.com/SscSPs/clonewander/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GeneratedEntry, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.GeneratedEntry), args.Error(1)
}

type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.5 }
func (fixedRand) Intn(int) int     { return 0 }

// failingStore fails a number of entry saves before delegating.
type failingStore struct {
	*memory.Store
	mu        sync.Mutex
	failSaves int
}

func (s *failingStore) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, commit domain.EntryCommit) (bool, error) {
	s.mu.Lock()
	if s.failSaves > 0 {
		s.failSaves--
		s.mu.Unlock()
		return false, errors.New("connection reset by peer")
	}
	s.mu.Unlock()
	return s.Store.SaveJournalEntry(ctx, entry, commit)
}

func forMoment(m domain.Moment) any {
	return mock.MatchedBy(func(req domain.GenerationRequest) bool { return req.Moment == m })
}

func generated(cost int64) domain.GeneratedEntry {
	return domain.GeneratedEntry{Message: "Wandered the old town.", Cost: decimal.NewFromInt(cost)}
}

type PollerTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	repos  *portsrepo.RepositoryProvider
	gen    *MockGenerator
	events *MockEventSink
	poller *poller.Poller
	clock  clock.Accelerated
	base   time.Time

	mu  sync.Mutex
	now time.Time
}

func (s *PollerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.New(1600, clock.DefaultBuckets)
	s.store = memory.NewStore(guard.New(s.clock.ToReal(5, time.Minute), true))
	s.repos = memory.NewRepositoryProvider(s.store)
	s.gen = new(MockGenerator)
	s.events = nil
	s.base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = s.base
	s.poller = s.newPoller(s.repos)
}

func (s *PollerTestSuite) TearDownTest() {
	s.gen.AssertExpectations(s.T())
}

func TestPollerTestSuite(t *testing.T) {
	suite.Run(t, new(PollerTestSuite))
}

func (s *PollerTestSuite) newPoller(repos *portsrepo.RepositoryProvider) *poller.Poller {
	deps := poller.Deps{
		Repos:     repos,
		Scheduler: schedule.NewScheduler(schedule.NewFixedSlot(s.clock), schedule.DefaultDailyCap),
		Clock:     s.clock,
		Generator: s.gen,
		Fallback:  generator.NewTemplate(fixedRand{}),
		Now:       s.nowFn,
	}
	if s.events != nil {
		deps.Events = s.events
	}
	return poller.New(deps, poller.Config{
		Interval:          5 * time.Second,
		GenerationTimeout: time.Second,
		TransitionGrace:   2 * time.Minute,
		MaxConcurrent:     4,
	})
}

func (s *PollerTestSuite) nowFn() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *PollerTestSuite) at(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.base.Add(d)
}

// saveTraveling stores a clone departing at base with the given durations.
func (s *PollerTestSuite) saveTraveling(id string, travelHours, activityDays float64) domain.Clone {
	arrival := s.base.Add(s.clock.ToReal(travelHours, time.Hour))
	c := domain.Clone{
		CloneID:         id,
		Name:            "Ada",
		Destination:     "Lisbon",
		Status:          domain.StatusTraveling,
		TravelHours:     travelHours,
		ActivityDays:    activityDays,
		Budget:          domain.BudgetMedium,
		Pack:            domain.DefaultPack,
		DepartureTime:   s.base,
		ArrivalTime:     arrival,
		ActivityEndTime: arrival.Add(s.clock.ToReal(activityDays, clock.SimulatedDay)),
		TotalSpend:      decimal.Zero,
		AuditFields:     domain.AuditFields{CreatedAt: s.base, CreatedBy: "anonymous"},
	}
	s.Require().NoError(s.store.SaveClone(s.ctx, c))
	return c
}

// saveArrived stores a clone that has already arrived and has its arrival entry.
func (s *PollerTestSuite) saveArrived(id string, travelHours, activityDays float64) domain.Clone {
	c := s.saveTraveling(id, travelHours, activityDays)
	active := domain.StatusActive
	ok, err := s.store.SaveJournalEntry(s.ctx, domain.JournalEntry{
		CloneID: id, Moment: domain.MomentArrival, Day: 1, Timestamp: c.ArrivalTime, Cost: decimal.NewFromInt(5),
	}, domain.EntryCommit{Advance: &active})
	s.Require().NoError(err)
	s.Require().True(ok)
	c.Status = active
	return c
}

func (s *PollerTestSuite) entries(id string) []domain.JournalEntry {
	entries, err := s.store.ListJournalEntries(s.ctx, domain.JournalFilter{CloneID: &id})
	s.Require().NoError(err)
	return entries
}

func (s *PollerTestSuite) clone(id string) *domain.Clone {
	c, err := s.store.FindCloneByID(s.ctx, id)
	s.Require().NoError(err)
	return c
}

func (s *PollerTestSuite) TestArrivalAfterTravelTime() {
	s.events = new(MockEventSink)
	s.poller = s.newPoller(s.repos)
	c := s.saveTraveling("c1", 2, 1)
	s.Equal(s.base.Add(4500*time.Millisecond), c.ArrivalTime)

	s.at(4 * time.Second)
	report := s.poller.Tick(s.ctx)
	s.Equal(1, report.Clones)
	s.Equal(0, report.Generated)
	s.Equal(domain.StatusTraveling, s.clone("c1").Status)

	s.gen.On("Generate", mock.Anything, forMoment(domain.MomentArrival)).Return(generated(10), nil).Once()
	s.events.On("Enqueue", "anonymous", poller.EventEntryGenerated, mock.MatchedBy(func(p map[string]any) bool {
		return p["clone_id"] == "c1" && p["moment"] == "arrival"
	})).Once()

	s.at(4500 * time.Millisecond)
	report = s.poller.Tick(s.ctx)
	s.Equal(1, report.Generated)

	got := s.clone("c1")
	s.Equal(domain.StatusActive, got.Status)
	s.True(decimal.NewFromInt(10).Equal(got.TotalSpend))
	entries := s.entries("c1")
	s.Require().Len(entries, 1)
	s.Equal(domain.MomentArrival, entries[0].Moment)
	s.Equal(c.ArrivalTime, entries[0].Timestamp)
	s.events.AssertExpectations(s.T())
}

func (s *PollerTestSuite) TestSummaryAtActivityEndCostsNothing() {
	c := s.saveArrived("c1", 2, 1)
	s.Equal(54*time.Second, c.ActivityEndTime.Sub(c.ArrivalTime))

	s.gen.On("Generate", mock.Anything, mock.MatchedBy(func(req domain.GenerationRequest) bool {
		return req.Moment == domain.MomentSummary && req.IsFinalSummary && req.Day == 1
	})).Return(generated(25), nil).Once()

	s.at(c.ActivityEndTime.Sub(s.base))
	report := s.poller.Tick(s.ctx)
	s.Equal(1, report.Generated)

	got := s.clone("c1")
	s.Equal(domain.StatusFinished, got.Status)
	s.True(decimal.NewFromInt(5).Equal(got.TotalSpend), "summary adds nothing, got %s", got.TotalSpend)

	entries := s.entries("c1")
	s.Require().Len(entries, 2)
	s.Equal(domain.MomentSummary, entries[0].Moment)
	s.True(entries[0].Cost.IsZero())

	s.at(c.ActivityEndTime.Sub(s.base) + time.Hour)
	report = s.poller.Tick(s.ctx)
	s.Equal(0, report.Clones)
	s.Len(s.entries("c1"), 2)
}

func (s *PollerTestSuite) TestCatchUpOneEntryPerTick() {
	c := s.saveArrived("c1", 2, 2)
	s.gen.On("Generate", mock.Anything, mock.Anything).Return(generated(3), nil).Times(6)

	s.at(c.ArrivalTime.Sub(s.base) + 105*time.Second)
	var moments []domain.Moment
	for i := 0; i < 6; i++ {
		report := s.poller.Tick(s.ctx)
		s.Equal(1, report.Generated, "tick %d", i)
		moments = append(moments, s.entries("c1")[0].Moment)
	}
	report := s.poller.Tick(s.ctx)
	s.Equal(0, report.Generated)

	s.Equal([]domain.Moment{
		domain.MomentMorning, domain.MomentMidDay, domain.MomentEvening,
		domain.MomentMorning, domain.MomentMidDay, domain.MomentEvening,
	}, moments)

	entries := s.entries("c1")
	s.Len(entries, 7)
	for i := 1; i < len(entries); i++ {
		s.True(entries[i-1].Timestamp.After(entries[i].Timestamp))
	}
	s.True(decimal.NewFromInt(5 + 6*3).Equal(s.clone("c1").TotalSpend))
}

func (s *PollerTestSuite) TestReplayCommitsStatusWithoutRegenerating() {
	c := s.saveTraveling("c1", 2, 1)
	ok, err := s.store.SaveJournalEntry(s.ctx, domain.JournalEntry{
		CloneID: "c1", Moment: domain.MomentArrival, Day: 1, Timestamp: c.ArrivalTime,
	}, domain.EntryCommit{})
	s.Require().NoError(err)
	s.Require().True(ok)

	s.at(c.ArrivalTime.Sub(s.base) + time.Second)
	report := s.poller.Tick(s.ctx)

	s.Equal(1, report.Transitions)
	s.Equal(0, report.Generated)
	s.Equal(domain.StatusActive, s.clone("c1").Status)
	s.Len(s.entries("c1"), 1)
}

func (s *PollerTestSuite) TestGenerationFailureRetriesNextTick() {
	c := s.saveTraveling("c1", 2, 1)
	s.gen.On("Generate", mock.Anything, forMoment(domain.MomentArrival)).
		Return(domain.GeneratedEntry{}, apperrors.ErrGeneration).Once()
	s.gen.On("Generate", mock.Anything, forMoment(domain.MomentArrival)).
		Return(generated(8), nil).Once()

	s.at(c.ArrivalTime.Sub(s.base))
	report := s.poller.Tick(s.ctx)
	s.Equal(1, report.Failures)
	s.Equal(domain.StatusTraveling, s.clone("c1").Status)
	s.Empty(s.entries("c1"))

	report = s.poller.Tick(s.ctx)
	s.Equal(1, report.Generated)
	s.Equal(domain.StatusActive, s.clone("c1").Status)
}

func (s *PollerTestSuite) TestOverdueTransitionUsesFallback() {
	c := s.saveTraveling("c1", 2, 10)
	s.gen.On("Generate", mock.Anything, forMoment(domain.MomentArrival)).
		Return(domain.GeneratedEntry{}, errors.New("upstream timeout")).Once()

	s.at(c.ArrivalTime.Sub(s.base) + 3*time.Minute)
	report := s.poller.Tick(s.ctx)
	s.Equal(1, report.Generated)

	s.Equal(domain.StatusActive, s.clone("c1").Status)
	entries := s.entries("c1")
	s.Require().Len(entries, 1)
	s.Contains(entries[0].Message, "Lisbon")
}

func (s *PollerTestSuite) TestInFlightCloneIsSkipped() {
	c := s.saveTraveling("c1", 2, 1)
	entered := make(chan struct{})
	release := make(chan struct{})
	s.gen.On("Generate", mock.Anything, forMoment(domain.MomentArrival)).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(generated(1), nil).Once()

	s.at(c.ArrivalTime.Sub(s.base))
	first := make(chan poller.TickReport)
	go func() { first <- s.poller.Tick(s.ctx) }()
	<-entered

	second := s.poller.Tick(s.ctx)
	s.Equal(1, second.Skipped)
	s.Equal(0, second.Generated)

	close(release)
	s.Equal(1, (<-first).Generated)
	s.Len(s.entries("c1"), 1)
}

func (s *PollerTestSuite) TestTerminalClonesAreNotVisited() {
	c := s.saveTraveling("c1", 2, 1)
	dismissed := domain.StatusDismissed
	_, err := s.store.UpdateClone(s.ctx, "c1", domain.CloneUpdate{Status: &dismissed})
	s.Require().NoError(err)

	s.at(c.ActivityEndTime.Sub(s.base) + time.Minute)
	report := s.poller.Tick(s.ctx)
	s.Equal(0, report.Clones)
	s.Empty(s.entries("c1"))
}

func (s *PollerTestSuite) TestCloneDeletedDuringGenerationIsNoOp() {
	c := s.saveTraveling("c1", 2, 1)
	s.gen.On("Generate", mock.Anything, forMoment(domain.MomentArrival)).
		Run(func(mock.Arguments) {
			s.NoError(s.store.DeleteClone(s.ctx, "c1"))
		}).
		Return(generated(1), nil).Once()

	s.at(c.ArrivalTime.Sub(s.base))
	report := s.poller.Tick(s.ctx)
	s.Equal(0, report.Generated)
	s.Equal(0, report.Failures)

	_, err := s.store.FindCloneByID(s.ctx, "c1")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Empty(s.entries("c1"))
}

func (s *PollerTestSuite) TestPersistenceFailureReleasesClone() {
	failing := &failingStore{Store: s.store, failSaves: 1}
	s.poller = s.newPoller(&portsrepo.RepositoryProvider{CloneRepo: failing, JournalRepo: failing})
	c := s.saveTraveling("c1", 2, 1)
	s.gen.On("Generate", mock.Anything, forMoment(domain.MomentArrival)).Return(generated(2), nil).Twice()

	s.at(c.ArrivalTime.Sub(s.base))
	report := s.poller.Tick(s.ctx)
	s.Equal(1, report.Failures)
	s.Equal(domain.StatusTraveling, s.clone("c1").Status)

	report = s.poller.Tick(s.ctx)
	s.Equal(1, report.Generated)
	s.Equal(domain.StatusActive, s.clone("c1").Status)
}

func (s *PollerTestSuite) TestClonesAreProcessedIndependently() {
	a := s.saveTraveling("a", 2, 1)
	s.saveTraveling("b", 2, 1)
	s.saveTraveling("far", 14, 1)
	s.gen.On("Generate", mock.Anything, forMoment(domain.MomentArrival)).Return(generated(1), nil).Twice()

	s.at(a.ArrivalTime.Sub(s.base))
	report := s.poller.Tick(s.ctx)
	s.Equal(3, report.Clones)
	s.Equal(2, report.Generated)
	s.Equal(domain.StatusTraveling, s.clone("far").Status)
}

func (s *PollerTestSuite) TestStartAndStop() {
	s.poller.Stop()

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	s.poller.Start(ctx)
	s.poller.Start(ctx)
	s.poller.Stop()
	s.poller.Stop()
}

func TestConfigValidate(t *testing.T) {
	ok := poller.Config{Interval: 5 * time.Second, MaxConcurrent: 1}
	assert.NoError(t, ok.Validate())

	tooFast := poller.Config{Interval: 500 * time.Millisecond, MaxConcurrent: 1}
	assert.ErrorIs(t, tooFast.Validate(), apperrors.ErrValidation)

	tooSlow := poller.Config{Interval: 11 * time.Minute, MaxConcurrent: 1}
	assert.ErrorIs(t, tooSlow.Validate(), apperrors.ErrValidation)

	noWorkers := poller.Config{Interval: 5 * time.Second}
	assert.Error(t, noWorkers.Validate())
}
