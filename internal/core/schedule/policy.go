// Package schedule decides when a clone's next periodic journal update is due
// and which moment it covers.
//
// A policy returns at most one Due per call. Clones that were not polled for a
// while catch up one entry per call, oldest first, because each Due carries the
// instant it represents rather than the instant it was noticed.
package schedule

import (
	"time"

	"github.com/SscSPs/clonewander/internal/core/domain"
)

// Due is the next periodic update a clone needs.
type Due struct {
	Moment domain.Moment
	Day    int
	At     time.Time
}

// UpdatePolicy picks the next periodic update for an active clone.
type UpdatePolicy interface {
	// Next returns the single next-needed update at now, if any.
	Next(clone domain.Clone, history *History, now time.Time) (Due, bool)
	// DedupeByDay reports whether a (moment, day) pair may appear only once.
	DedupeByDay() bool
}

// Scheduler applies an UpdatePolicy under the daily entry cap.
type Scheduler struct {
	policy   UpdatePolicy
	dailyCap int
}

// DefaultDailyCap is the maximum number of entries per clone per simulated day.
const DefaultDailyCap = 10

func NewScheduler(policy UpdatePolicy, dailyCap int) *Scheduler {
	return &Scheduler{policy: policy, dailyCap: dailyCap}
}

// History indexes entries under this scheduler's cap.
func (s *Scheduler) History(entries []domain.JournalEntry) *History {
	return NewHistory(entries, s.dailyCap)
}

// NextUpdate returns the periodic update due for clone at now. Only active
// clones receive periodic updates.
func (s *Scheduler) NextUpdate(clone domain.Clone, history *History, now time.Time) (Due, bool) {
	if clone.Status != domain.StatusActive {
		return Due{}, false
	}
	due, ok := s.policy.Next(clone, history, now)
	if !ok || history.DayFull(due.Day) {
		return Due{}, false
	}
	return due, true
}

func (s *Scheduler) DedupeByDay() bool { return s.policy.DedupeByDay() }

type forgetter interface {
	Forget(cloneID string)
}

// Forget drops any per-clone state the policy keeps, once a clone stops
// receiving updates.
func (s *Scheduler) Forget(cloneID string) {
	if f, ok := s.policy.(forgetter); ok {
		f.Forget(cloneID)
	}
}
