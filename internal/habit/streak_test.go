package habit

import (
	"testing"
	"time"

	"habitflow/internal/models"
)

var (
	today     = time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC)
	yesterday = time.Date(2024, 6, 4, 8, 0, 0, 0, time.UTC)
	longAgo   = time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
)

func ptr(t time.Time) *time.Time { return &t }

func TestShouldResetStreak(t *testing.T) {
	cases := []struct {
		name string
		last *time.Time
		want bool
	}{
		{"never completed", nil, true},
		{"completed yesterday", ptr(yesterday), false},
		{"completed today", ptr(today.Add(-2 * time.Hour)), true},
		{"completed long ago", ptr(longAgo), true},
		{"two days ago", ptr(today.AddDate(0, 0, -2)), true},
	}
	for _, tc := range cases {
		h := models.Habit{Streak: 3, LastCompletedDate: tc.last}
		if got := ShouldResetStreak(h, today); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestShouldResetStreak_CalendarDayNotElapsedTime(t *testing.T) {
	// 11:59pm yesterday vs 12:01am today: only two minutes apart but still
	// counts as "yesterday".
	lateYesterday := time.Date(2024, 6, 4, 23, 59, 0, 0, time.UTC)
	earlyToday := time.Date(2024, 6, 5, 0, 1, 0, 0, time.UTC)

	h := models.Habit{Streak: 7, LastCompletedDate: &lateYesterday}
	if ShouldResetStreak(h, earlyToday) {
		t.Error("completion at 11:59pm yesterday must count as yesterday at 12:01am")
	}
}

func TestEffectiveStreak(t *testing.T) {
	cases := []struct {
		name   string
		status models.Status
		last   *time.Time
		streak int
		want   int
	}{
		{"done overrides decay", models.StatusDone, ptr(longAgo), 5, 5},
		{"todo within grace day", models.StatusTodo, ptr(yesterday), 5, 5},
		{"todo decayed", models.StatusTodo, ptr(longAgo), 5, 0},
		{"todo never completed", models.StatusTodo, nil, 0, 0},
	}
	for _, tc := range cases {
		h := models.Habit{Status: tc.status, Streak: tc.streak, LastCompletedDate: tc.last}
		if got := EffectiveStreak(h, today); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRecordCompletion(t *testing.T) {
	cases := []struct {
		name   string
		last   *time.Time
		streak int
		want   int
	}{
		{"first ever completion", nil, 0, 1},
		{"consecutive day increments", ptr(yesterday), 5, 6},
		{"same day is idempotent", ptr(today.Add(-4 * time.Hour)), 5, 5},
		{"gap restarts at one", ptr(today.AddDate(0, 0, -2)), 5, 1},
		{"long gap restarts at one", ptr(longAgo), 12, 1},
	}
	for _, tc := range cases {
		h := models.Habit{Status: models.StatusTodo, Streak: tc.streak, LastCompletedDate: tc.last}
		if got := RecordCompletion(h, today); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestStreakScenario_FiveDayRunContinues(t *testing.T) {
	h := models.Habit{Status: models.StatusTodo, Streak: 5, LastCompletedDate: ptr(yesterday)}

	if got := EffectiveStreak(h, today); got != 5 {
		t.Errorf("expected effective streak 5 before completing, got %d", got)
	}
	if got := RecordCompletion(h, today); got != 6 {
		t.Errorf("expected streak 6 after completing, got %d", got)
	}
}

func TestStreakScenario_LongDecayedRun(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	h := models.Habit{Status: models.StatusTodo, Streak: 5, LastCompletedDate: ptr(longAgo)}

	if got := EffectiveStreak(h, now); got != 0 {
		t.Errorf("expected decayed display streak 0, got %d", got)
	}
	if got := RecordCompletion(h, now); got != 1 {
		t.Errorf("expected restart at 1, got %d", got)
	}
}
