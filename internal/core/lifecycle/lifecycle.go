// Package lifecycle decides clone status transitions from the current time and
// the clone's journal history.
package lifecycle

import (
	"time"

	"github.com/SscSPs/clonewander/internal/core/domain"
)

// EntryLookup answers whether a clone already has an entry for a moment.
type EntryLookup interface {
	HasMoment(moment domain.Moment) bool
}

// Transition is the single status change due for a clone at a tick.
type Transition struct {
	From domain.CloneStatus
	To   domain.CloneStatus
	// Moment is the entry that must accompany the transition.
	Moment domain.Moment
	// StatusOnly is set when the accompanying entry already exists and only the
	// status needs committing, e.g. after a crash between the two writes.
	StatusOnly bool
	// Boundary is the instant the transition became due.
	Boundary time.Time
}

var allowed = map[domain.CloneStatus][]domain.CloneStatus{
	domain.StatusTraveling: {domain.StatusActive, domain.StatusDismissed},
	domain.StatusActive:    {domain.StatusFinished, domain.StatusDismissed},
}

// CanTransition reports whether from -> to follows traveling -> active -> finished
// or * -> dismissed from a non-terminal state.
func CanTransition(from, to domain.CloneStatus) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Evaluate returns the transition due at now, if any. Arrival is always handled
// before the summary, even when a clone is polled after both boundaries passed.
func Evaluate(clone domain.Clone, entries EntryLookup, now time.Time) (Transition, bool) {
	switch clone.Status {
	case domain.StatusTraveling:
		if now.Before(clone.ArrivalTime) {
			return Transition{}, false
		}
		return Transition{
			From:       domain.StatusTraveling,
			To:         domain.StatusActive,
			Moment:     domain.MomentArrival,
			StatusOnly: entries.HasMoment(domain.MomentArrival),
			Boundary:   clone.ArrivalTime,
		}, true
	case domain.StatusActive:
		if now.Before(clone.ActivityEndTime) {
			return Transition{}, false
		}
		return Transition{
			From:       domain.StatusActive,
			To:         domain.StatusFinished,
			Moment:     domain.MomentSummary,
			StatusOnly: entries.HasMoment(domain.MomentSummary),
			Boundary:   clone.ActivityEndTime,
		}, true
	}
	return Transition{}, false
}

// Overdue reports whether the transition has been pending longer than grace.
func (t Transition) Overdue(now time.Time, grace time.Duration) bool {
	return grace > 0 && now.Sub(t.Boundary) >= grace
}
