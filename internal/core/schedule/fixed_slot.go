package schedule

import (
	"sort"
	"time"

	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
)

// slotMinutes divides a simulated day's real-time window into sixtieths.
const slotMinutes = 60

// Slot places a moment Minute sixtieths into a simulated day's real-time window.
type Slot struct {
	Moment domain.Moment
	Minute int
}

// DefaultSlots are 10, 30 and 50 minutes into a 60 minute day.
var DefaultSlots = []Slot{
	{Moment: domain.MomentMorning, Minute: 10},
	{Moment: domain.MomentMidDay, Minute: 30},
	{Moment: domain.MomentEvening, Minute: 50},
}

// FixedSlot schedules a deterministic set of moments on every simulated day.
type FixedSlot struct {
	clock clock.Accelerated
	slots []Slot
}

// NewFixedSlot returns a FixedSlot policy. Without slots it uses DefaultSlots.
func NewFixedSlot(c clock.Accelerated, slots ...Slot) *FixedSlot {
	if len(slots) == 0 {
		slots = DefaultSlots
	}
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Minute < sorted[j].Minute })
	return &FixedSlot{clock: c, slots: sorted}
}

var _ UpdatePolicy = (*FixedSlot)(nil)

func (p *FixedSlot) DedupeByDay() bool { return true }

// Next returns the earliest slot after the history's high-water mark that is
// already due, skipping days that hit the cap.
func (p *FixedSlot) Next(clone domain.Clone, history *History, now time.Time) (Due, bool) {
	dayLen := p.clock.RealDay()
	hwDay, hwRank, hasHW := history.HighWater()

	for day := 1; day <= clone.TotalDays(); day++ {
		dayStart := p.clock.DayStart(clone.ArrivalTime, day)
		if dayStart.After(now) {
			break
		}
		if history.DayFull(day) {
			continue
		}
		for _, s := range p.slots {
			if hasHW && (day < hwDay || (day == hwDay && s.Moment.Rank() <= hwRank)) {
				continue
			}
			at := dayStart.Add(dayLen * time.Duration(s.Minute) / slotMinutes)
			if at.After(now) || !at.Before(clone.ActivityEndTime) {
				return Due{}, false
			}
			if history.Has(s.Moment, day) {
				continue
			}
			return Due{Moment: s.Moment, Day: day, At: at}, true
		}
	}
	return Due{}, false
}
