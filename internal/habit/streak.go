package habit

import (
	"time"

	"habitflow/internal/models"
)

// sameCalendarDay compares by year-month-day in b's location, not by elapsed
// time: 11:59pm yesterday and 12:01am today are different days.
func sameCalendarDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ShouldResetStreak reports whether the stored streak no longer counts: the
// habit was never completed, or its last completion was not yesterday.
func ShouldResetStreak(h models.Habit, today time.Time) bool {
	if h.LastCompletedDate == nil {
		return true
	}
	yesterday := today.AddDate(0, 0, -1)
	return !sameCalendarDay(*h.LastCompletedDate, yesterday)
}

// EffectiveStreak is the streak value to display right now. It never mutates
// the record: a decayed streak shows as 0 while the stored value stays put
// until the user acts. A habit already marked Done keeps showing its stored
// streak even when the last-completion date alone would suggest decay.
func EffectiveStreak(h models.Habit, today time.Time) int {
	if h.Status == models.StatusDone {
		return h.Streak
	}
	if ShouldResetStreak(h, today) {
		return 0
	}
	return h.Streak
}

// RecordCompletion returns the streak value to persist when the user marks
// the habit complete now. The caller must write the returned streak together
// with lastCompletedDate = today and status = Done as one update.
//
//   - never completed         -> 1
//   - last completed yesterday -> streak + 1
//   - last completed today     -> streak (re-completion is idempotent)
//   - gap of 2+ days           -> 1 (today itself is day one of the new run)
func RecordCompletion(h models.Habit, today time.Time) int {
	if h.LastCompletedDate == nil {
		return 1
	}
	last := *h.LastCompletedDate
	if sameCalendarDay(last, today.AddDate(0, 0, -1)) {
		return h.Streak + 1
	}
	if sameCalendarDay(last, today) {
		return h.Streak
	}
	return 1
}
