// Package poller drives clones through their trip. Every tick it visits the
// non-terminal clones, commits due status transitions and writes at most one
// journal entry per clone.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/lifecycle"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/core/schedule"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultInterval          = 5 * time.Second
	DefaultInitialDelay      = 2 * time.Second
	DefaultGenerationTimeout = 30 * time.Second
	DefaultTransitionGrace   = 2 * time.Minute
	DefaultMaxConcurrent     = 4

	MinInterval = time.Second
	MaxInterval = 10 * time.Minute
)

// EventEntryGenerated is emitted for every persisted entry.
const EventEntryGenerated = "journal_entry_generated"

const actor = "poller"

// EventSink receives product analytics events. utils.PosthogClientWrapper
// satisfies it.
type EventSink interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// Config tunes the polling loop.
type Config struct {
	Interval          time.Duration
	InitialDelay      time.Duration
	GenerationTimeout time.Duration
	// TransitionGrace is how long an arrival or summary may keep failing on the
	// primary generator before the fallback writes it.
	TransitionGrace time.Duration
	MaxConcurrent   int
}

// Validate checks the interval bounds.
func (c Config) Validate() error {
	if c.Interval < MinInterval || c.Interval > MaxInterval {
		return fmt.Errorf("%w: poll interval %s outside [%s, %s]", apperrors.ErrValidation, c.Interval, MinInterval, MaxInterval)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("%w: max concurrent generations must be at least 1", apperrors.ErrValidation)
	}
	return nil
}

// Deps are the collaborators of a Poller. Fallback and Events are optional.
type Deps struct {
	Repos     *portsrepo.RepositoryProvider
	Scheduler *schedule.Scheduler
	Clock     clock.Accelerated
	Generator portssvc.JournalGenerator
	Fallback  portssvc.JournalGenerator
	Events    EventSink
	Now       func() time.Time
}

// TickReport counts what one tick did.
type TickReport struct {
	TickID      string
	Clones      int
	Generated   int
	Transitions int
	Duplicates  int
	Skipped     int
	Failures    int
	Duration    time.Duration
}

type outcome int

const (
	outcomeIdle outcome = iota
	outcomeGenerated
	outcomeStatusOnly
	outcomeDuplicate
	outcomeBusy
	outcomeFailed
)

type Poller struct {
	clones    portsrepo.CloneRepositoryFacade
	journal   portsrepo.JournalEntryRepositoryFacade
	scheduler *schedule.Scheduler
	clock     clock.Accelerated
	generator portssvc.JournalGenerator
	fallback  portssvc.JournalGenerator
	events    EventSink
	cfg       Config
	now       func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a Poller. Zero values in cfg take the package defaults.
func New(deps Deps, cfg Config) *Poller {
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = DefaultGenerationTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Poller{
		clones:    deps.Repos.CloneRepo,
		journal:   deps.Repos.JournalRepo,
		scheduler: deps.Scheduler,
		clock:     deps.Clock,
		generator: deps.Generator,
		fallback:  deps.Fallback,
		events:    deps.Events,
		cfg:       cfg,
		now:       now,
		inFlight:  make(map[string]struct{}),
	}
}

// Start runs the polling loop in the background until ctx is done or Stop is
// called. Calling Start on a running Poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	if p.cfg.Interval < 5*time.Second || p.cfg.Interval > 10*time.Second {
		slog.Warn("Poll interval is outside the recommended 5-10s range", slog.Duration("interval", p.cfg.Interval))
	}
	slog.Info("Starting journal poller",
		slog.Duration("interval", p.cfg.Interval),
		slog.Duration("initial_delay", p.cfg.InitialDelay),
		slog.Int("max_concurrent", p.cfg.MaxConcurrent))

	go p.run(ctx, done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(p.cfg.InitialDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
		p.Tick(ctx)
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Stop cancels the loop and waits for an in-progress tick to return. It is
// safe to call more than once, or without Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	slog.Info("Journal poller stopped")
}

// Tick runs one polling pass.
func (p *Poller) Tick(ctx context.Context) TickReport {
	started := p.now()
	report := TickReport{TickID: uuid.NewString()}
	logger := slog.Default().With(slog.String("tick_id", report.TickID))

	clones, err := p.clones.ListClonesByStatus(ctx, domain.NonTerminalStatuses...)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list clones", slog.String("error", err.Error()))
		report.Failures++
		return report
	}
	report.Clones = len(clones)

	var (
		g     errgroup.Group
		resMu sync.Mutex
	)
	g.SetLimit(p.cfg.MaxConcurrent)
	for _, c := range clones {
		g.Go(func() error {
			out := p.processClone(ctx, logger.With(slog.String("clone_id", c.CloneID)), c)
			resMu.Lock()
			defer resMu.Unlock()
			switch out {
			case outcomeGenerated:
				report.Generated++
			case outcomeStatusOnly:
				report.Transitions++
			case outcomeDuplicate:
				report.Duplicates++
			case outcomeBusy:
				report.Skipped++
			case outcomeFailed:
				report.Failures++
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = p.now().Sub(started)
	if report.Generated > 0 || report.Transitions > 0 || report.Failures > 0 {
		logger.InfoContext(ctx, "Poll tick finished",
			slog.Int("clones", report.Clones),
			slog.Int("generated", report.Generated),
			slog.Int("transitions", report.Transitions),
			slog.Int("duplicates", report.Duplicates),
			slog.Int("skipped", report.Skipped),
			slog.Int("failures", report.Failures))
	}
	return report
}

func (p *Poller) acquire(cloneID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inFlight[cloneID]; busy {
		return false
	}
	p.inFlight[cloneID] = struct{}{}
	return true
}

func (p *Poller) release(cloneID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, cloneID)
}

func (p *Poller) processClone(ctx context.Context, logger *slog.Logger, clone domain.Clone) outcome {
	if !p.acquire(clone.CloneID) {
		logger.DebugContext(ctx, "Clone already in flight, skipping")
		return outcomeBusy
	}
	defer p.release(clone.CloneID)

	cloneID := clone.CloneID
	entries, err := p.journal.ListJournalEntries(ctx, domain.JournalFilter{CloneID: &cloneID})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load journal", slog.String("error", err.Error()))
		return outcomeFailed
	}
	history := p.scheduler.History(entries)
	now := p.now()

	if tr, ok := lifecycle.Evaluate(clone, history, now); ok {
		return p.transition(ctx, logger, clone, tr, now)
	}

	due, ok := p.scheduler.NextUpdate(clone, history, now)
	if !ok {
		return outcomeIdle
	}
	req := p.request(clone, due.Moment, due.Day, due.At)
	gen, err := p.generate(ctx, p.generator, req)
	if err != nil {
		logger.WarnContext(ctx, "Journal generation failed, retrying next tick",
			slog.String("moment", string(due.Moment)),
			slog.Int("day", due.Day),
			slog.String("error", err.Error()))
		return outcomeFailed
	}
	entry := domain.JournalEntry{
		CloneID:   clone.CloneID,
		Moment:    due.Moment,
		Day:       due.Day,
		Message:   gen.Message,
		Cost:      gen.Cost,
		Timestamp: due.At,
	}
	return p.save(ctx, logger, clone, entry, domain.EntryCommit{})
}

func (p *Poller) transition(ctx context.Context, logger *slog.Logger, clone domain.Clone, tr lifecycle.Transition, now time.Time) outcome {
	logger = logger.With(slog.String("from", string(tr.From)), slog.String("to", string(tr.To)))

	if tr.StatusOnly {
		to := tr.To
		_, err := p.clones.UpdateClone(ctx, clone.CloneID, domain.CloneUpdate{
			Status:        &to,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		})
		if err != nil {
			if gone(err) {
				logger.DebugContext(ctx, "Clone gone or terminal, dropping status update", slog.String("error", err.Error()))
				return outcomeIdle
			}
			logger.ErrorContext(ctx, "Failed to commit status", slog.String("error", err.Error()))
			return outcomeFailed
		}
		logger.InfoContext(ctx, "Clone status advanced")
		p.afterTransition(clone.CloneID, tr.To)
		return outcomeStatusOnly
	}

	day := 1
	if tr.Moment == domain.MomentSummary {
		day = clone.TotalDays()
	}
	req := p.request(clone, tr.Moment, day, tr.Boundary)

	gen, err := p.generate(ctx, p.generator, req)
	if err != nil {
		if p.fallback == nil || !tr.Overdue(now, p.cfg.TransitionGrace) {
			logger.WarnContext(ctx, "Journal generation failed, retrying next tick",
				slog.String("moment", string(tr.Moment)),
				slog.String("error", err.Error()))
			return outcomeFailed
		}
		logger.WarnContext(ctx, "Transition overdue, using fallback generator",
			slog.String("moment", string(tr.Moment)),
			slog.Duration("overdue", now.Sub(tr.Boundary)),
			slog.String("error", err.Error()))
		gen, err = p.generate(ctx, p.fallback, req)
		if err != nil {
			logger.ErrorContext(ctx, "Fallback generation failed", slog.String("error", err.Error()))
			return outcomeFailed
		}
	}
	if tr.Moment == domain.MomentSummary {
		gen.Cost = decimal.Zero
	}

	to := tr.To
	entry := domain.JournalEntry{
		CloneID:   clone.CloneID,
		Moment:    tr.Moment,
		Day:       day,
		Message:   gen.Message,
		Cost:      gen.Cost,
		Timestamp: tr.Boundary,
	}
	out := p.save(ctx, logger, clone, entry, domain.EntryCommit{Advance: &to})
	if out == outcomeGenerated {
		p.afterTransition(clone.CloneID, tr.To)
	}
	return out
}

func (p *Poller) afterTransition(cloneID string, to domain.CloneStatus) {
	if to.IsTerminal() {
		p.scheduler.Forget(cloneID)
	}
}

func (p *Poller) generate(ctx context.Context, gen portssvc.JournalGenerator, req domain.GenerationRequest) (domain.GeneratedEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.GenerationTimeout)
	defer cancel()

	out, err := gen.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrGeneration) {
			return domain.GeneratedEntry{}, err
		}
		return domain.GeneratedEntry{}, fmt.Errorf("%w: %w", apperrors.ErrGeneration, err)
	}
	return out, nil
}

func (p *Poller) save(ctx context.Context, logger *slog.Logger, clone domain.Clone, entry domain.JournalEntry, commit domain.EntryCommit) outcome {
	logger = logger.With(slog.String("moment", string(entry.Moment)), slog.Int("day", entry.Day))

	ok, err := p.journal.SaveJournalEntry(ctx, entry, commit)
	if err != nil {
		if gone(err) {
			logger.DebugContext(ctx, "Clone gone or terminal, dropping entry", slog.String("error", err.Error()))
			p.scheduler.Forget(clone.CloneID)
			return outcomeIdle
		}
		logger.ErrorContext(ctx, "Failed to save journal entry",
			slog.String("error", fmt.Errorf("%w: %w", apperrors.ErrPersistence, err).Error()))
		return outcomeFailed
	}
	if !ok {
		logger.DebugContext(ctx, "Duplicate journal entry rejected")
		return outcomeDuplicate
	}

	logger.InfoContext(ctx, "Journal entry saved", slog.String("cost", entry.Cost.StringFixed(2)))
	if p.events != nil {
		p.events.Enqueue(clone.CreatedBy, EventEntryGenerated, map[string]any{
			"clone_id":    clone.CloneID,
			"destination": clone.Destination,
			"moment":      string(entry.Moment),
			"day":         entry.Day,
			"cost":        entry.Cost.StringFixed(2),
			"budget":      string(clone.Budget),
		})
	}
	return outcomeGenerated
}

func (p *Poller) request(clone domain.Clone, moment domain.Moment, day int, at time.Time) domain.GenerationRequest {
	return domain.GenerationRequest{
		CloneName:      clone.Name,
		Destination:    clone.Destination,
		Moment:         moment,
		Day:            day,
		TotalDays:      clone.TotalDays(),
		Budget:         clone.Budget,
		Pack:           clone.Pack,
		Preferences:    clone.Preferences,
		TimeOfDay:      p.timeOfDay(clone, moment, at),
		IsFinalSummary: moment == domain.MomentSummary,
		TravelHours:    clone.TravelHours,
		ActivityDays:   clone.ActivityDays,
	}
}

// timeOfDay describes the moment to the generator. Periodic moments carry
// their own label; lifecycle moments use the simulated clock.
func (p *Poller) timeOfDay(clone domain.Clone, moment domain.Moment, at time.Time) string {
	switch moment {
	case domain.MomentMorning:
		return string(clock.Morning)
	case domain.MomentMidDay:
		return string(clock.Afternoon)
	case domain.MomentEvening:
		return string(clock.Evening)
	}
	return string(p.clock.TimeOfDay(clone.ArrivalTime, at))
}

func gone(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrTerminal)
}
