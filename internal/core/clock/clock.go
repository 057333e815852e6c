// Package clock maps wall-clock time onto accelerated trip time.
//
// Every function takes the acceleration factor F explicitly: one real
// millisecond corresponds to F simulated milliseconds. Nothing here reads the
// current time or holds state.
package clock

import (
	"fmt"
	"math"
	"time"
)

// DefaultFactor is the acceleration used when none is configured.
const DefaultFactor = 1600.0

// SimulatedDay is the length of one trip day in simulated time.
const SimulatedDay = 24 * time.Hour

// TimeOfDay is a coarse bucket of the simulated hour.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// Buckets holds the start hour of each time-of-day bucket. Night runs from
// NightStart through midnight to MorningStart.
type Buckets struct {
	MorningStart   int
	AfternoonStart int
	EveningStart   int
	NightStart     int
}

// DefaultBuckets is morning [6,12), afternoon [12,17), evening [17,22), night [22,6).
var DefaultBuckets = Buckets{MorningStart: 6, AfternoonStart: 12, EveningStart: 17, NightStart: 22}

// Validate checks the bucket starts are strictly increasing hours of a day.
func (b Buckets) Validate() error {
	if b.MorningStart < 0 || b.NightStart > 23 {
		return fmt.Errorf("time-of-day buckets must lie within 0..23, got %+v", b)
	}
	if !(b.MorningStart < b.AfternoonStart && b.AfternoonStart < b.EveningStart && b.EveningStart < b.NightStart) {
		return fmt.Errorf("time-of-day buckets must be strictly increasing, got %+v", b)
	}
	return nil
}

// Classify buckets a simulated hour in [0,24).
func (b Buckets) Classify(hour float64) TimeOfDay {
	switch {
	case hour >= float64(b.MorningStart) && hour < float64(b.AfternoonStart):
		return Morning
	case hour >= float64(b.AfternoonStart) && hour < float64(b.EveningStart):
		return Afternoon
	case hour >= float64(b.EveningStart) && hour < float64(b.NightStart):
		return Evening
	default:
		return Night
	}
}

// ToReal converts a count of simulated units into real duration: units*unit/F.
func ToReal(units float64, unit time.Duration, factor float64) time.Duration {
	if factor <= 0 {
		factor = 1
	}
	return time.Duration(units * float64(unit) / factor)
}

// ToSimulated converts real elapsed time into simulated elapsed time.
func ToSimulated(real time.Duration, factor float64) time.Duration {
	if factor <= 0 {
		factor = 1
	}
	return time.Duration(float64(real) * factor)
}

// RealDay is the real duration of one simulated day.
func RealDay(factor float64) time.Duration {
	return ToReal(1, SimulatedDay, factor)
}

// SimulatedHour returns the accelerated hours elapsed since start, reduced modulo 24.
// Before start it returns the hour of start itself (0).
func SimulatedHour(start, now time.Time, factor float64) float64 {
	if now.Before(start) {
		return 0
	}
	hours := ToSimulated(now.Sub(start), factor).Hours()
	return math.Mod(hours, 24)
}

// SimulatedTimeOfDay buckets the simulated hour reached at now for an activity
// that began at start.
func SimulatedTimeOfDay(start, now time.Time, factor float64, buckets Buckets) TimeOfDay {
	return buckets.Classify(SimulatedHour(start, now, factor))
}

// CurrentDay is the 1-based simulated day number at now. It is 1 before start.
func CurrentDay(start, now time.Time, factor float64) int {
	if now.Before(start) {
		return 1
	}
	elapsed := ToSimulated(now.Sub(start), factor)
	return int(elapsed/SimulatedDay) + 1
}

// DayStart is the real instant simulated day n (1-based) begins.
func DayStart(start time.Time, day int, factor float64) time.Time {
	if day < 1 {
		day = 1
	}
	return start.Add(ToReal(float64(day-1), SimulatedDay, factor))
}

// Progress is the clamped percentage of total elapsed since start.
func Progress(now, start time.Time, total time.Duration) float64 {
	if total <= 0 {
		if now.Before(start) {
			return 0
		}
		return 100
	}
	p := float64(now.Sub(start)) / float64(total) * 100
	return math.Max(0, math.Min(100, p))
}

// SimulatedTime is the derived trip position of an activity at an instant.
type SimulatedTime struct {
	CurrentDay int       `json:"currentDay"`
	TimeOfDay  TimeOfDay `json:"timeOfDay"`
	Progress   float64   `json:"progress"`
	IsComplete bool      `json:"isComplete"`
}

// Simulate computes the SimulatedTime of an activity running from start to end.
func Simulate(now, start, end time.Time, factor float64, buckets Buckets) SimulatedTime {
	day := CurrentDay(start, now, factor)
	if !end.After(now) {
		// Pin to the final day once the activity is over.
		day = CurrentDay(start, end.Add(-time.Nanosecond), factor)
	}
	return SimulatedTime{
		CurrentDay: day,
		TimeOfDay:  SimulatedTimeOfDay(start, now, factor, buckets),
		Progress:   Progress(now, start, end.Sub(start)),
		IsComplete: !now.Before(end),
	}
}

// FormatRemaining renders a countdown such as "1h 2m 3s". Negative durations
// read "Arrived!".
func FormatRemaining(d time.Duration) string {
	totalSeconds := int64(math.Floor(d.Seconds()))
	if totalSeconds < 0 {
		return "Arrived!"
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// Accelerated bundles a factor with its bucket table for callers that pass
// both around together.
type Accelerated struct {
	Factor  float64
	Buckets Buckets
}

// New returns an Accelerated clock, falling back to defaults for zero values.
func New(factor float64, buckets Buckets) Accelerated {
	if factor <= 0 {
		factor = DefaultFactor
	}
	if buckets == (Buckets{}) {
		buckets = DefaultBuckets
	}
	return Accelerated{Factor: factor, Buckets: buckets}
}

func (a Accelerated) ToReal(units float64, unit time.Duration) time.Duration {
	return ToReal(units, unit, a.Factor)
}

func (a Accelerated) RealDay() time.Duration { return RealDay(a.Factor) }

func (a Accelerated) CurrentDay(start, now time.Time) int {
	return CurrentDay(start, now, a.Factor)
}

func (a Accelerated) DayStart(start time.Time, day int) time.Time {
	return DayStart(start, day, a.Factor)
}

func (a Accelerated) TimeOfDay(start, now time.Time) TimeOfDay {
	return SimulatedTimeOfDay(start, now, a.Factor, a.Buckets)
}

func (a Accelerated) Simulate(now, start, end time.Time) SimulatedTime {
	return Simulate(now, start, end, a.Factor, a.Buckets)
}
