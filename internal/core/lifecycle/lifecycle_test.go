package lifecycle_test

import (
	"testing"
	"time"

	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moments map[domain.Moment]bool

func (m moments) HasMoment(moment domain.Moment) bool { return m[moment] }

func newClone(status domain.CloneStatus, base time.Time) domain.Clone {
	return domain.Clone{
		CloneID:         "clone-1",
		Status:          status,
		DepartureTime:   base,
		ArrivalTime:     base.Add(4500 * time.Millisecond),
		ActivityEndTime: base.Add(4500*time.Millisecond + 54*time.Second),
	}
}

func TestEvaluate_TravelingBeforeArrival(t *testing.T) {
	base := time.Now()
	clone := newClone(domain.StatusTraveling, base)

	_, ok := lifecycle.Evaluate(clone, moments{}, base.Add(4*time.Second))
	assert.False(t, ok)
}

func TestEvaluate_Arrival(t *testing.T) {
	base := time.Now()
	clone := newClone(domain.StatusTraveling, base)

	tr, ok := lifecycle.Evaluate(clone, moments{}, clone.ArrivalTime)
	require.True(t, ok)
	assert.Equal(t, domain.StatusActive, tr.To)
	assert.Equal(t, domain.MomentArrival, tr.Moment)
	assert.False(t, tr.StatusOnly)
	assert.Equal(t, clone.ArrivalTime, tr.Boundary)
}

func TestEvaluate_ArrivalEntryAlreadyPersisted(t *testing.T) {
	base := time.Now()
	clone := newClone(domain.StatusTraveling, base)

	tr, ok := lifecycle.Evaluate(clone, moments{domain.MomentArrival: true}, clone.ArrivalTime.Add(time.Second))
	require.True(t, ok)
	assert.True(t, tr.StatusOnly)
}

func TestEvaluate_TravelingPastBothBoundariesArrivesFirst(t *testing.T) {
	base := time.Now()
	clone := newClone(domain.StatusTraveling, base)

	tr, ok := lifecycle.Evaluate(clone, moments{}, clone.ActivityEndTime.Add(time.Hour))
	require.True(t, ok)
	assert.Equal(t, domain.MomentArrival, tr.Moment)
	assert.Equal(t, domain.StatusActive, tr.To)
}

func TestEvaluate_Finish(t *testing.T) {
	base := time.Now()
	clone := newClone(domain.StatusActive, base)

	_, ok := lifecycle.Evaluate(clone, moments{}, clone.ActivityEndTime.Add(-time.Millisecond))
	assert.False(t, ok)

	tr, ok := lifecycle.Evaluate(clone, moments{domain.MomentArrival: true}, clone.ActivityEndTime)
	require.True(t, ok)
	assert.Equal(t, domain.StatusFinished, tr.To)
	assert.Equal(t, domain.MomentSummary, tr.Moment)
	assert.False(t, tr.StatusOnly)
}

func TestEvaluate_TerminalStatesYieldNothing(t *testing.T) {
	base := time.Now()
	for _, s := range []domain.CloneStatus{domain.StatusFinished, domain.StatusDismissed} {
		clone := newClone(s, base)
		_, ok := lifecycle.Evaluate(clone, moments{}, base.Add(24*time.Hour))
		assert.False(t, ok, "status %s", s)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.CloneStatus
		want     bool
	}{
		{domain.StatusTraveling, domain.StatusActive, true},
		{domain.StatusActive, domain.StatusFinished, true},
		{domain.StatusTraveling, domain.StatusDismissed, true},
		{domain.StatusActive, domain.StatusDismissed, true},
		{domain.StatusTraveling, domain.StatusFinished, false},
		{domain.StatusActive, domain.StatusTraveling, false},
		{domain.StatusFinished, domain.StatusDismissed, false},
		{domain.StatusFinished, domain.StatusActive, false},
		{domain.StatusDismissed, domain.StatusActive, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lifecycle.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTransitionOverdue(t *testing.T) {
	boundary := time.Now()
	tr := lifecycle.Transition{Boundary: boundary}

	assert.False(t, tr.Overdue(boundary.Add(time.Minute), 2*time.Minute))
	assert.True(t, tr.Overdue(boundary.Add(2*time.Minute), 2*time.Minute))
	assert.False(t, tr.Overdue(boundary.Add(time.Hour), 0))
}
