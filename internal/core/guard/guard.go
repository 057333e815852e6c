// Package guard rejects journal entries that would duplicate an existing moment.
//
// Stores call Conflicts immediately before inserting, inside whatever critical
// section they have. Without one (a plain key-value backend) two writers can
// still both pass the check; the dedupe key exists so stores with unique
// indexes can close that window.
package guard

import (
	"fmt"
	"time"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
)

// DefaultSimulatedWindow is the tolerance in simulated time.
const DefaultSimulatedWindow = 5 * time.Minute

// Guard holds the duplicate rules for one scheduler configuration.
type Guard struct {
	// Window is the real-time tolerance within which the same moment may not repeat.
	Window time.Duration
	// PerDay additionally allows each (moment, day) pair only once.
	PerDay bool
}

func New(window time.Duration, perDay bool) Guard {
	return Guard{Window: window, PerDay: perDay}
}

// Key is the unique key of an entry within its clone.
func (g Guard) Key(e domain.JournalEntry) string {
	switch {
	case e.Moment.IsLifecycle():
		return string(e.Moment)
	case g.PerDay:
		return fmt.Sprintf("%s:%d", e.Moment, e.Day)
	default:
		return fmt.Sprintf("%s:%d", e.Moment, e.Timestamp.UnixMilli())
	}
}

// Conflicts reports whether candidate duplicates any of existing.
func (g Guard) Conflicts(existing []domain.JournalEntry, candidate domain.JournalEntry) bool {
	for _, e := range existing {
		if e.CloneID != candidate.CloneID || e.Moment != candidate.Moment {
			continue
		}
		if candidate.Moment.IsLifecycle() {
			return true
		}
		if g.PerDay && e.Day == candidate.Day {
			return true
		}
		if g.withinWindow(e.Timestamp, candidate.Timestamp) {
			return true
		}
	}
	return false
}

// Check returns apperrors.ErrDuplicateEntry when candidate conflicts.
func (g Guard) Check(existing []domain.JournalEntry, candidate domain.JournalEntry) error {
	if g.Conflicts(existing, candidate) {
		return fmt.Errorf("%w: clone %s moment %s day %d", apperrors.ErrDuplicateEntry, candidate.CloneID, candidate.Moment, candidate.Day)
	}
	return nil
}

// WindowBounds is the open interval around ts that counts as a repeat.
func (g Guard) WindowBounds(ts time.Time) (time.Time, time.Time) {
	return ts.Add(-g.Window), ts.Add(g.Window)
}

func (g Guard) withinWindow(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < g.Window
}
