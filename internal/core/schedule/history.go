package schedule

import (
	"time"

	"github.com/SscSPs/clonewander/internal/core/domain"
)

type momentDay struct {
	moment domain.Moment
	day    int
}

// History indexes one clone's journal entries for scheduling decisions.
type History struct {
	dailyCap int
	count    int
	byDay    map[int]int
	slots    map[momentDay]bool
	moments  map[domain.Moment]bool

	hasLatest  bool
	latestDay  int
	latestRank int
	lastAt     time.Time
}

// NewHistory builds a History. A dailyCap of zero or less disables the cap.
func NewHistory(entries []domain.JournalEntry, dailyCap int) *History {
	h := &History{
		dailyCap: dailyCap,
		byDay:    make(map[int]int),
		slots:    make(map[momentDay]bool),
		moments:  make(map[domain.Moment]bool),
	}
	for _, e := range entries {
		h.add(e)
	}
	return h
}

func (h *History) add(e domain.JournalEntry) {
	h.count++
	h.byDay[e.Day]++
	h.slots[momentDay{e.Moment, e.Day}] = true
	h.moments[e.Moment] = true

	rank := e.Moment.Rank()
	if !h.hasLatest || e.Day > h.latestDay || (e.Day == h.latestDay && rank > h.latestRank) {
		h.hasLatest = true
		h.latestDay = e.Day
		h.latestRank = rank
	}
	if e.Timestamp.After(h.lastAt) {
		h.lastAt = e.Timestamp
	}
}

// Len is the number of entries.
func (h *History) Len() int { return h.count }

// HasMoment reports whether any entry carries moment.
func (h *History) HasMoment(moment domain.Moment) bool { return h.moments[moment] }

// Has reports whether an entry exists for moment on day.
func (h *History) Has(moment domain.Moment, day int) bool {
	return h.slots[momentDay{moment, day}]
}

// CountOnDay is the number of entries recorded for a simulated day.
func (h *History) CountOnDay(day int) int { return h.byDay[day] }

// DayFull reports whether the daily cap is reached for day.
func (h *History) DayFull(day int) bool {
	return h.dailyCap > 0 && h.byDay[day] >= h.dailyCap
}

// HighWater is the latest (day, moment rank) recorded.
func (h *History) HighWater() (day int, rank int, ok bool) {
	return h.latestDay, h.latestRank, h.hasLatest
}

// LastTimestamp is the most recent entry timestamp.
func (h *History) LastTimestamp() (time.Time, bool) {
	return h.lastAt, h.count > 0
}
