package schedule

import (
	"sync"
	"time"

	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
)

// RandSource yields uniform values in [0,1). *math/rand/v2.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type drawn struct {
	after    time.Time
	interval time.Duration
}

// RandomInterval schedules the next update a random number of simulated hours
// after the previous one. The moment is taken from the simulated time of day;
// updates falling into the night are deferred to the next morning.
type RandomInterval struct {
	clock    clock.Accelerated
	minHours float64
	maxHours float64
	rnd      RandSource

	mu    sync.Mutex
	drawn map[string]drawn
}

// NewRandomInterval returns a RandomInterval policy drawing from [minHours, maxHours].
func NewRandomInterval(c clock.Accelerated, minHours, maxHours float64, rnd RandSource) *RandomInterval {
	if maxHours < minHours {
		minHours, maxHours = maxHours, minHours
	}
	return &RandomInterval{
		clock:    c,
		minHours: minHours,
		maxHours: maxHours,
		rnd:      rnd,
		drawn:    make(map[string]drawn),
	}
}

var _ UpdatePolicy = (*RandomInterval)(nil)

// Moments repeat within a day, so only the tolerance window dedupes them.
func (p *RandomInterval) DedupeByDay() bool { return false }

func (p *RandomInterval) Next(clone domain.Clone, history *History, now time.Time) (Due, bool) {
	last := clone.ArrivalTime
	if ts, ok := history.LastTimestamp(); ok && ts.After(last) {
		last = ts
	}
	at := last.Add(p.interval(clone.CloneID, last))
	start := clone.ArrivalTime

	// Each day costs at most two deferrals.
	for i := 0; i <= 2*clone.TotalDays()+1; i++ {
		if !at.Before(clone.ActivityEndTime) {
			return Due{}, false
		}
		day := p.clock.CurrentDay(start, at)
		if history.DayFull(day) {
			at = p.clock.DayStart(start, day+1)
			continue
		}
		hour := clock.SimulatedHour(start, at, p.clock.Factor)
		switch {
		case hour < float64(p.clock.Buckets.MorningStart):
			at = p.morningOf(start, day)
			continue
		case hour >= float64(p.clock.Buckets.NightStart):
			at = p.morningOf(start, day+1)
			continue
		}
		if at.After(now) {
			return Due{}, false
		}
		return Due{Moment: momentFor(p.clock.Buckets.Classify(hour)), Day: day, At: at}, true
	}
	return Due{}, false
}

func (p *RandomInterval) morningOf(start time.Time, day int) time.Time {
	return p.clock.DayStart(start, day).Add(p.clock.ToReal(float64(p.clock.Buckets.MorningStart), time.Hour))
}

// interval returns the gap after last, drawing once per (clone, last) so
// repeated ticks see the same due time.
func (p *RandomInterval) interval(cloneID string, last time.Time) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d, ok := p.drawn[cloneID]; ok && d.after.Equal(last) {
		return d.interval
	}
	hours := p.minHours + p.rnd.Float64()*(p.maxHours-p.minHours)
	d := drawn{after: last, interval: p.clock.ToReal(hours, time.Hour)}
	p.drawn[cloneID] = d
	return d.interval
}

// Forget drops memoized state for a clone that no longer needs scheduling.
func (p *RandomInterval) Forget(cloneID string) {
	p.mu.Lock()
	delete(p.drawn, cloneID)
	p.mu.Unlock()
}

func momentFor(tod clock.TimeOfDay) domain.Moment {
	switch tod {
	case clock.Morning:
		return domain.MomentMorning
	case clock.Afternoon:
		return domain.MomentMidDay
	default:
		return domain.MomentEvening
	}
}
