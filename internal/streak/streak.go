// Package streak tracks consecutive days with a successful urge completion.
//
// The update rule is a pure function of (previous state, today), compared at
// calendar-day granularity: the first ever success starts the streak at 1, a
// second success on the same day is a no-op, a success on exactly the next
// day increments, and anything else (a missed day, or the clock moving
// backwards) resets to 1.
package streak

import "time"

// State is the persisted streak record. Invariant: Count == 0 exactly when
// LastSuccess is the zero time; otherwise LastSuccess holds the calendar
// day of the most recent success, at midnight UTC.
type State struct {
	Count       int
	LastSuccess time.Time
}

// DayOf truncates t to its calendar day in loc. The result is represented
// as midnight UTC of that day so that State values compare with Equal
// regardless of the location they were computed in.
func DayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Record applies one successful completion on the given calendar day.
// today must already be day-truncated (see DayOf).
func Record(prev State, today time.Time) State {
	if prev.Count == 0 || prev.LastSuccess.IsZero() {
		return State{Count: 1, LastSuccess: today}
	}
	switch {
	case today.Equal(prev.LastSuccess):
		return prev // at most one increment per day
	case today.Equal(prev.LastSuccess.AddDate(0, 0, 1)):
		return State{Count: prev.Count + 1, LastSuccess: today}
	default:
		return State{Count: 1, LastSuccess: today}
	}
}
