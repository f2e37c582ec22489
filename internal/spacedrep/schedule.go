package spacedrep

import "time"

// BaseIntervals defines the expanding interval schedule in minutes, indexed by
// level. Levels past the end of the table use the last entry.
var BaseIntervals = []int{1, 5, 10, 60, 180}

// MaxLevel is the highest level with its own entry in BaseIntervals.
const MaxLevel = 4

// IntervalMinutes returns the review interval for a level, clamped to the table.
func IntervalMinutes(level int) int {
	if level < 0 {
		level = 0
	}
	if level >= len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[level]
}

// Interval returns IntervalMinutes as a duration.
func Interval(level int) time.Duration {
	return time.Duration(IntervalMinutes(level)) * time.Minute
}

// NextState maps a card's current level and the answer outcome to its new
// level and the delay until it is due again.
func NextState(level int, correct bool) (int, time.Duration) {
	if !correct {
		return 0, Interval(0)
	}
	if level < 0 {
		level = 0
	}
	next := level + 1
	return next, Interval(next)
}
