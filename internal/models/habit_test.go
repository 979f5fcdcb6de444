package models

import "testing"

func TestRecurrenceValid(t *testing.T) {
	for _, r := range []Recurrence{RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Recurrence("yearly").Valid() {
		t.Error("yearly should not be valid")
	}
}

func TestTimeOfDayValid(t *testing.T) {
	for _, tod := range []TimeOfDay{TimeMorning, TimeLunch, TimeAfternoon, TimeEvening, TimeDaily} {
		if !tod.Valid() {
			t.Errorf("%s should be valid", tod)
		}
	}
	if TimeOfDay("Midnight").Valid() {
		t.Error("Midnight should not be valid")
	}
	if TimeOfDay("morning").Valid() {
		t.Error("time of day tags are case-sensitive")
	}
}

func TestValidWeekday(t *testing.T) {
	for _, d := range CanonicalWeekdays {
		if !ValidWeekday(d) {
			t.Errorf("%s should be valid", d)
		}
	}
	for _, d := range []string{"Monday", "mon", ""} {
		if ValidWeekday(d) {
			t.Errorf("%q should not be valid", d)
		}
	}
}
