// Package habit holds the pure recurrence and streak rules. Nothing here
// touches the database, the cache, or the clock: callers pass "today" in.
package habit

import (
	"strings"
	"time"

	"habitflow/internal/models"
)

// WeekdayName returns the canonical lowercase English weekday name of t.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsDueToday reports whether h is active on the calendar day of today.
// Daily and monthly habits are always due. Weekly habits are due on their
// configured weekdays; a weekly habit with no weekdays is due every day.
func IsDueToday(h models.Habit, today time.Time) bool {
	if h.Recurrence == models.RecurrenceWeekly && len(h.Weekdays) > 0 {
		day := WeekdayName(today)
		for _, wd := range h.Weekdays {
			if wd == day {
				return true
			}
		}
		return false
	}
	return true
}

// FilterDueToday returns the habits due today, preserving input order.
func FilterDueToday(habits []models.Habit, today time.Time) []models.Habit {
	var due []models.Habit
	for _, h := range habits {
		if IsDueToday(h, today) {
			due = append(due, h)
		}
	}
	return due
}

// CountHiddenWeekly counts weekly habits with configured weekdays that are
// suppressed today. Shown as an "N habits hidden today" hint.
func CountHiddenWeekly(habits []models.Habit, today time.Time) int {
	n := 0
	for _, h := range habits {
		if h.Recurrence == models.RecurrenceWeekly && len(h.Weekdays) > 0 && !IsDueToday(h, today) {
			n++
		}
	}
	return n
}

// TimeGroup is one display bucket of habits sharing a time of day.
type TimeGroup struct {
	TimeOfDay models.TimeOfDay `json:"time_of_day"`
	Habits    []models.Habit   `json:"habits"`
}

var displayOrder = []models.TimeOfDay{
	models.TimeMorning,
	models.TimeLunch,
	models.TimeAfternoon,
	models.TimeEvening,
	models.TimeDaily,
}

// GroupByTimeOfDay partitions habits into buckets emitted in the fixed
// display order Morning, Lunch, Afternoon, Evening, Daily. Empty buckets are
// omitted and each bucket keeps its incoming relative order. Habits with an
// unrecognized time of day are left out; callers that care should log them.
func GroupByTimeOfDay(habits []models.Habit) []TimeGroup {
	buckets := make(map[models.TimeOfDay][]models.Habit, len(displayOrder))
	for _, h := range habits {
		if h.TimeOfDay.Valid() {
			buckets[h.TimeOfDay] = append(buckets[h.TimeOfDay], h)
		}
	}
	var groups []TimeGroup
	for _, tod := range displayOrder {
		if hs := buckets[tod]; len(hs) > 0 {
			groups = append(groups, TimeGroup{TimeOfDay: tod, Habits: hs})
		}
	}
	return groups
}
