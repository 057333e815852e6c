package schedule_test

import (
	"testing"
	"time"

	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// At 1600x a simulated day lasts 54s and a simulated hour 2.25s.
var testClock = clock.New(1600, clock.DefaultBuckets)

const simHour = 2250 * time.Millisecond

type fixedRand struct {
	value float64
	calls int
}

func (r *fixedRand) Float64() float64 {
	r.calls++
	return r.value
}

func activeClone(base time.Time, days float64) domain.Clone {
	return domain.Clone{
		CloneID:         "clone-1",
		Status:          domain.StatusActive,
		ActivityDays:    days,
		DepartureTime:   base.Add(-4500 * time.Millisecond),
		ArrivalTime:     base,
		ActivityEndTime: base.Add(time.Duration(days * float64(54*time.Second))),
	}
}

func arrivalEntry(base time.Time) domain.JournalEntry {
	return domain.JournalEntry{CloneID: "clone-1", Moment: domain.MomentArrival, Day: 1, Timestamp: base}
}

func TestFixedSlot_FirstSlotDue(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 2)
	sched := schedule.NewScheduler(schedule.NewFixedSlot(testClock), schedule.DefaultDailyCap)
	h := sched.History([]domain.JournalEntry{arrivalEntry(base)})

	_, ok := sched.NextUpdate(clone, h, base.Add(8*time.Second))
	assert.False(t, ok, "morning slot sits at 9s")

	due, ok := sched.NextUpdate(clone, h, base.Add(10*time.Second))
	require.True(t, ok)
	assert.Equal(t, domain.MomentMorning, due.Moment)
	assert.Equal(t, 1, due.Day)
	assert.Equal(t, base.Add(9*time.Second), due.At)
}

func TestFixedSlot_CatchUpOnePerCall(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 2)
	sched := schedule.NewScheduler(schedule.NewFixedSlot(testClock), schedule.DefaultDailyCap)
	now := base.Add(105 * time.Second)

	entries := []domain.JournalEntry{arrivalEntry(base)}
	var got []string
	for i := 0; i < 10; i++ {
		due, ok := sched.NextUpdate(clone, sched.History(entries), now)
		if !ok {
			break
		}
		got = append(got, string(due.Moment)+"@"+due.At.Sub(base).String())
		entries = append(entries, domain.JournalEntry{CloneID: clone.CloneID, Moment: due.Moment, Day: due.Day, Timestamp: due.At})
	}

	assert.Equal(t, []string{
		"morning@9s", "mid-day@27s", "evening@45s",
		"morning@1m3s", "mid-day@1m21s", "evening@1m39s",
	}, got)
}

func TestFixedSlot_NeverGoesBackwardsWithinADay(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 2)
	sched := schedule.NewScheduler(schedule.NewFixedSlot(testClock), schedule.DefaultDailyCap)
	h := sched.History([]domain.JournalEntry{
		arrivalEntry(base),
		{Moment: domain.MomentEvening, Day: 1, Timestamp: base.Add(45 * time.Second)},
	})

	_, ok := sched.NextUpdate(clone, h, base.Add(50*time.Second))
	assert.False(t, ok, "morning and mid-day of day 1 are behind the evening entry")

	due, ok := sched.NextUpdate(clone, h, base.Add(64*time.Second))
	require.True(t, ok)
	assert.Equal(t, domain.MomentMorning, due.Moment)
	assert.Equal(t, 2, due.Day)
}

func TestFixedSlot_NoSlotsAtOrAfterActivityEnd(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 0.5) // ends at 27s, exactly the mid-day slot
	sched := schedule.NewScheduler(schedule.NewFixedSlot(testClock), schedule.DefaultDailyCap)
	entries := []domain.JournalEntry{
		arrivalEntry(base),
		{Moment: domain.MomentMorning, Day: 1, Timestamp: base.Add(9 * time.Second)},
	}

	_, ok := sched.NextUpdate(clone, sched.History(entries), base.Add(26*time.Second))
	assert.False(t, ok)
	_, ok = sched.NextUpdate(clone, sched.History(entries), base.Add(40*time.Second))
	assert.False(t, ok)
}

func TestFixedSlot_FullDayIsSkipped(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 2)
	sched := schedule.NewScheduler(schedule.NewFixedSlot(testClock), 1)
	h := sched.History([]domain.JournalEntry{arrivalEntry(base)})

	_, ok := sched.NextUpdate(clone, h, base.Add(50*time.Second))
	assert.False(t, ok)

	due, ok := sched.NextUpdate(clone, h, base.Add(64*time.Second))
	require.True(t, ok)
	assert.Equal(t, 2, due.Day)
	assert.Equal(t, domain.MomentMorning, due.Moment)
}

func TestScheduler_OnlyActiveClones(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched := schedule.NewScheduler(schedule.NewFixedSlot(testClock), schedule.DefaultDailyCap)
	h := sched.History(nil)

	for _, s := range []domain.CloneStatus{domain.StatusTraveling, domain.StatusFinished, domain.StatusDismissed} {
		clone := activeClone(base, 2)
		clone.Status = s
		_, ok := sched.NextUpdate(clone, h, base.Add(30*time.Second))
		assert.False(t, ok, "status %s", s)
	}
}

func TestScheduler_DailyCapReached(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 2)
	policy := schedule.NewRandomInterval(testClock, 1, 1, &fixedRand{value: 0})
	sched := schedule.NewScheduler(policy, schedule.DefaultDailyCap)

	entries := []domain.JournalEntry{arrivalEntry(base)}
	for i := 1; i < schedule.DefaultDailyCap; i++ {
		entries = append(entries, domain.JournalEntry{
			Moment:    domain.MomentMidDay,
			Day:       1,
			Timestamp: base.Add(time.Duration(6+i) * simHour),
		})
	}
	h := sched.History(entries)
	require.True(t, h.DayFull(1))

	// A full simulated hour has passed since the last entry, yet day 1 is capped.
	_, ok := sched.NextUpdate(clone, h, base.Add(17*simHour))
	assert.False(t, ok)

	// The count resets with the next day.
	due, ok := sched.NextUpdate(clone, h, base.Add(24*simHour+7*simHour))
	require.True(t, ok)
	assert.Equal(t, 2, due.Day)
	assert.Equal(t, domain.MomentMorning, due.Moment)
}

func TestRandomInterval_DefersNightToMorning(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 2)
	rnd := &fixedRand{value: 0.5} // 3.5 simulated hours
	policy := schedule.NewRandomInterval(testClock, 2, 5, rnd)
	sched := schedule.NewScheduler(policy, schedule.DefaultDailyCap)
	h := sched.History([]domain.JournalEntry{arrivalEntry(base)})

	// 3.5h after arrival is still night; the update moves to 06:00.
	_, ok := sched.NextUpdate(clone, h, base.Add(10*time.Second))
	assert.False(t, ok)

	due, ok := sched.NextUpdate(clone, h, base.Add(14*time.Second))
	require.True(t, ok)
	assert.Equal(t, domain.MomentMorning, due.Moment)
	assert.Equal(t, 1, due.Day)
	assert.Equal(t, base.Add(6*simHour), due.At)
	assert.Equal(t, 1, rnd.calls, "interval is drawn once per previous entry")
}

func TestRandomInterval_LabelsFromTimeOfDay(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 2)
	policy := schedule.NewRandomInterval(testClock, 2, 2, &fixedRand{value: 0})
	sched := schedule.NewScheduler(policy, schedule.DefaultDailyCap)

	h := sched.History([]domain.JournalEntry{
		arrivalEntry(base),
		{Moment: domain.MomentMorning, Day: 1, Timestamp: base.Add(11 * simHour)},
	})
	due, ok := sched.NextUpdate(clone, h, base.Add(14*simHour))
	require.True(t, ok)
	assert.Equal(t, domain.MomentMidDay, due.Moment)
	assert.Equal(t, base.Add(13*simHour), due.At)

	h = sched.History([]domain.JournalEntry{
		arrivalEntry(base),
		{Moment: domain.MomentEvening, Day: 1, Timestamp: base.Add(21 * simHour)},
	})
	due, ok = sched.NextUpdate(clone, h, base.Add(40*simHour))
	require.True(t, ok)
	assert.Equal(t, domain.MomentMorning, due.Moment, "23:00 is night so the update waits for day 2")
	assert.Equal(t, 2, due.Day)
	assert.Equal(t, base.Add(30*simHour), due.At)
}

func TestRandomInterval_StopsAtActivityEnd(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clone := activeClone(base, 1)
	policy := schedule.NewRandomInterval(testClock, 5, 5, &fixedRand{value: 0})
	sched := schedule.NewScheduler(policy, schedule.DefaultDailyCap)
	h := sched.History([]domain.JournalEntry{
		arrivalEntry(base),
		{Moment: domain.MomentEvening, Day: 1, Timestamp: base.Add(20 * simHour)},
	})

	_, ok := sched.NextUpdate(clone, h, base.Add(10*time.Minute))
	assert.False(t, ok)
}

func TestPoliciesDedupeGranularity(t *testing.T) {
	assert.True(t, schedule.NewFixedSlot(testClock).DedupeByDay())
	assert.False(t, schedule.NewRandomInterval(testClock, 2, 5, &fixedRand{}).DedupeByDay())
}
