package guard_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/guard"
	"github.com/stretchr/testify/assert"
)

func entry(moment domain.Moment, day int, ts time.Time) domain.JournalEntry {
	return domain.JournalEntry{CloneID: "clone-1", Moment: moment, Day: day, Timestamp: ts}
}

func TestConflicts_WithinWindow(t *testing.T) {
	// Five simulated minutes at 1600x is 187.5ms of real time.
	window := clock.ToReal(5, time.Minute, 1600)
	g := guard.New(window, false)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	existing := []domain.JournalEntry{entry(domain.MomentMorning, 1, ts)}

	assert.True(t, g.Conflicts(existing, entry(domain.MomentMorning, 1, ts)))
	assert.True(t, g.Conflicts(existing, entry(domain.MomentMorning, 1, ts.Add(100*time.Millisecond))))
	assert.True(t, g.Conflicts(existing, entry(domain.MomentMorning, 1, ts.Add(-100*time.Millisecond))))
	assert.False(t, g.Conflicts(existing, entry(domain.MomentMorning, 1, ts.Add(window))))
	assert.False(t, g.Conflicts(existing, entry(domain.MomentMidDay, 1, ts)), "different moment")
}

func TestConflicts_OtherCloneIgnored(t *testing.T) {
	g := guard.New(time.Minute, true)
	ts := time.Now()
	other := entry(domain.MomentMorning, 1, ts)
	other.CloneID = "clone-2"

	assert.False(t, g.Conflicts([]domain.JournalEntry{other}, entry(domain.MomentMorning, 1, ts)))
}

func TestConflicts_PerDay(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	existing := []domain.JournalEntry{entry(domain.MomentEvening, 2, ts)}

	perDay := guard.New(time.Second, true)
	assert.True(t, perDay.Conflicts(existing, entry(domain.MomentEvening, 2, ts.Add(time.Hour))))
	assert.False(t, perDay.Conflicts(existing, entry(domain.MomentEvening, 3, ts.Add(time.Hour))))

	windowOnly := guard.New(time.Second, false)
	assert.False(t, windowOnly.Conflicts(existing, entry(domain.MomentEvening, 2, ts.Add(time.Hour))))
}

func TestConflicts_LifecycleMomentsAreUnique(t *testing.T) {
	g := guard.New(time.Second, false)
	ts := time.Now()

	assert.True(t, g.Conflicts(
		[]domain.JournalEntry{entry(domain.MomentArrival, 1, ts)},
		entry(domain.MomentArrival, 1, ts.Add(time.Hour)),
	))
	assert.True(t, g.Conflicts(
		[]domain.JournalEntry{entry(domain.MomentSummary, 3, ts)},
		entry(domain.MomentSummary, 3, ts.Add(time.Hour)),
	))
}

func TestCheck(t *testing.T) {
	g := guard.New(time.Minute, true)
	ts := time.Now()
	existing := []domain.JournalEntry{entry(domain.MomentMorning, 1, ts)}

	err := g.Check(existing, entry(domain.MomentMorning, 1, ts))
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateEntry))
	assert.NoError(t, g.Check(existing, entry(domain.MomentMidDay, 1, ts)))
}

func TestKey(t *testing.T) {
	ts := time.UnixMilli(1_700_000_000_123)

	assert.Equal(t, "arrival", guard.New(0, true).Key(entry(domain.MomentArrival, 1, ts)))
	assert.Equal(t, "summary", guard.New(0, false).Key(entry(domain.MomentSummary, 4, ts)))
	assert.Equal(t, "mid-day:2", guard.New(0, true).Key(entry(domain.MomentMidDay, 2, ts)))
	assert.Equal(t, "mid-day:1700000000123", guard.New(0, false).Key(entry(domain.MomentMidDay, 2, ts)))
}
