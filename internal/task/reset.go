package task

import (
	"time"

	"github.com/burrowhq/burrow/internal/model"
)

// ValidRecurrence reports whether s is one of the recurrence periods the
// picker offers.
func ValidRecurrence(s string) bool {
	switch s {
	case model.RecurrenceDaily, model.RecurrenceEvery2Days, model.RecurrenceWeekly, model.RecurrenceMonthly:
		return true
	}
	return false
}

// ShouldReset reports whether the task's completed flag must be cleared
// because its recurrence window has elapsed at now.
//
// A task that has never been completed is always reset-due. Daily tasks
// reset on a calendar-day boundary in now's location (completing at 11:59pm
// and checking at 12:01am counts as a new day), while every_2_days and
// weekly use whole elapsed 24-hour periods. Monthly and unrecognized
// recurrence values never reset; for monthly that is a known gap, kept
// until a real policy is decided rather than inventing a 30-day rule.
func ShouldReset(t model.Task, now time.Time) bool {
	if t.LastCompletedAt == nil {
		return true
	}

	daysSince := int(now.Sub(*t.LastCompletedAt) / (24 * time.Hour))

	switch t.Recurrence {
	case model.RecurrenceDaily:
		return !sameCalendarDay(now, t.LastCompletedAt.In(now.Location()))
	case model.RecurrenceEvery2Days:
		return daysSince >= 2
	case model.RecurrenceWeekly:
		return daysSince >= 7
	default:
		return false
	}
}

// ResetIfNeeded clears the completed flag when the task is reset-due and
// reports whether anything changed. The stored completion timestamp is kept
// for history; only the next Complete overwrites it. Persisting the change
// is the caller's responsibility.
func ResetIfNeeded(t *model.Task, now time.Time) bool {
	if !t.Completed || !ShouldReset(*t, now) {
		return false
	}
	t.Completed = false
	return true
}

// Complete marks the task done as of now. This is the only place
// LastCompletedAt advances.
func Complete(t *model.Task, now time.Time) {
	t.Completed = true
	ts := now
	t.LastCompletedAt = &ts
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
