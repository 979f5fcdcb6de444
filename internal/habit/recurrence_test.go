package habit

import (
	"testing"
	"time"

	"habitflow/internal/models"
)

// 2024-06-05 is a Wednesday.
var wednesday = time.Date(2024, 6, 5, 10, 30, 0, 0, time.UTC)

func TestIsDueToday_DailyAndMonthlyAlwaysDue(t *testing.T) {
	days := []time.Time{
		wednesday,
		time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC), // Saturday
		time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
	}
	for _, rec := range []models.Recurrence{models.RecurrenceDaily, models.RecurrenceMonthly} {
		h := models.Habit{Title: "stretch", Recurrence: rec}
		for _, today := range days {
			if !IsDueToday(h, today) {
				t.Errorf("%s habit not due on %s", rec, today.Weekday())
			}
		}
	}
}

func TestIsDueToday_WeeklyMatchesWeekdays(t *testing.T) {
	h := models.Habit{
		Title:      "gym",
		Recurrence: models.RecurrenceWeekly,
		Weekdays:   []string{"monday", "wednesday", "friday"},
	}

	tuesday := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)
	if IsDueToday(h, tuesday) {
		t.Error("MWF habit should not be due on Tuesday")
	}
	if !IsDueToday(h, wednesday) {
		t.Error("MWF habit should be due on Wednesday")
	}
}

func TestIsDueToday_WeeklyWithoutWeekdaysFallsBackToEveryDay(t *testing.T) {
	for _, weekdays := range [][]string{nil, {}} {
		h := models.Habit{Title: "read", Recurrence: models.RecurrenceWeekly, Weekdays: weekdays}
		if !IsDueToday(h, wednesday) {
			t.Errorf("weekly habit with weekdays=%v should default to due every day", weekdays)
		}
	}
}

func TestFilterDueToday_PreservesOrder(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Recurrence: models.RecurrenceDaily},
		{ID: "b", Recurrence: models.RecurrenceWeekly, Weekdays: []string{"saturday"}},
		{ID: "c", Recurrence: models.RecurrenceMonthly},
		{ID: "d", Recurrence: models.RecurrenceWeekly, Weekdays: []string{"wednesday"}},
	}

	due := FilterDueToday(habits, wednesday)

	want := []string{"a", "c", "d"}
	if len(due) != len(want) {
		t.Fatalf("expected %d due habits, got %d", len(want), len(due))
	}
	for i, id := range want {
		if due[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, due[i].ID)
		}
	}
}

func TestCountHiddenWeekly(t *testing.T) {
	habits := []models.Habit{
		{Recurrence: models.RecurrenceDaily},
		{Recurrence: models.RecurrenceWeekly, Weekdays: []string{"saturday"}}, // hidden
		{Recurrence: models.RecurrenceWeekly, Weekdays: []string{"wednesday"}}, // due
		{Recurrence: models.RecurrenceWeekly}, // fallback-due, never hidden
		{Recurrence: models.RecurrenceWeekly, Weekdays: []string{"monday", "friday"}}, // hidden
	}

	if got := CountHiddenWeekly(habits, wednesday); got != 2 {
		t.Errorf("expected 2 hidden weekly habits, got %d", got)
	}

	// Must match |weekly with weekdays| - |weekly with weekdays due today|.
	withWeekdays, dueToday := 0, 0
	for _, h := range habits {
		if h.Recurrence == models.RecurrenceWeekly && len(h.Weekdays) > 0 {
			withWeekdays++
			if IsDueToday(h, wednesday) {
				dueToday++
			}
		}
	}
	if got := CountHiddenWeekly(habits, wednesday); got != withWeekdays-dueToday {
		t.Errorf("hidden count %d does not match %d-%d", got, withWeekdays, dueToday)
	}
}

func TestGroupByTimeOfDay_FixedOrderAndNoEmptyBuckets(t *testing.T) {
	habits := []models.Habit{
		{ID: "e1", TimeOfDay: models.TimeEvening},
		{ID: "m1", TimeOfDay: models.TimeMorning},
		{ID: "e2", TimeOfDay: models.TimeEvening},
		{ID: "d1", TimeOfDay: models.TimeDaily},
	}

	groups := GroupByTimeOfDay(habits)

	wantOrder := []models.TimeOfDay{models.TimeMorning, models.TimeEvening, models.TimeDaily}
	if len(groups) != len(wantOrder) {
		t.Fatalf("expected %d groups, got %d", len(wantOrder), len(groups))
	}
	for i, tod := range wantOrder {
		if groups[i].TimeOfDay != tod {
			t.Errorf("group %d: expected %s, got %s", i, tod, groups[i].TimeOfDay)
		}
		if len(groups[i].Habits) == 0 {
			t.Errorf("group %s is empty", tod)
		}
	}
	// Evening bucket keeps incoming relative order.
	if groups[1].Habits[0].ID != "e1" || groups[1].Habits[1].ID != "e2" {
		t.Error("evening bucket lost incoming relative order")
	}
}

func TestGroupByTimeOfDay_DropsUnknownBucket(t *testing.T) {
	habits := []models.Habit{
		{ID: "ok", TimeOfDay: models.TimeMorning},
		{ID: "bad", TimeOfDay: "Midnight"},
	}

	groups := GroupByTimeOfDay(habits)

	if len(groups) != 1 || groups[0].TimeOfDay != models.TimeMorning {
		t.Fatalf("expected only the Morning group, got %+v", groups)
	}
	for _, h := range groups[0].Habits {
		if h.ID == "bad" {
			t.Error("habit with unknown time of day leaked into output")
		}
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(wednesday); got != "wednesday" {
		t.Errorf("expected wednesday, got %q", got)
	}
}
