package models

import "time"

// Recurrence is the cadence rule for a habit.
type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid reports whether r is a known recurrence value.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// TimeOfDay is a display grouping tag. It plays no part in due-date logic.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "Morning"
	TimeLunch     TimeOfDay = "Lunch"
	TimeAfternoon TimeOfDay = "Afternoon"
	TimeEvening   TimeOfDay = "Evening"
	TimeDaily     TimeOfDay = "Daily"
)

// Valid reports whether t is a known time-of-day bucket.
func (t TimeOfDay) Valid() bool {
	switch t {
	case TimeMorning, TimeLunch, TimeAfternoon, TimeEvening, TimeDaily:
		return true
	}
	return false
}

// Status marks whether the current occurrence has been completed.
type Status string

const (
	StatusTodo Status = "Todo"
	StatusDone Status = "Done"
)

// Weekdays are stored as canonical lowercase English names ("monday" .. "sunday").
var CanonicalWeekdays = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// ValidWeekday reports whether s is one of the seven canonical names.
func ValidWeekday(s string) bool {
	for _, d := range CanonicalWeekdays {
		if s == d {
			return true
		}
	}
	return false
}

// Habit is a recurring commitment tracked with a completion streak.
type Habit struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Title             string     `json:"title"`
	Recurrence        Recurrence `json:"recurrence"`
	Weekdays          []string   `json:"weekdays,omitempty"`
	TimeOfDay         TimeOfDay  `json:"time_of_day"`
	Status            Status     `json:"status"`
	Streak            int        `json:"streak"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HabitCommand is the message payload for habit mutations on Kafka.
// Pointer fields on update mean "leave unchanged" when nil.
type HabitCommand struct {
	Action      string     `json:"action"` // create, update, delete, complete
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title,omitempty"`
	Recurrence  Recurrence `json:"recurrence,omitempty"`
	Weekdays    []string   `json:"weekdays,omitempty"`
	TimeOfDay   TimeOfDay  `json:"time_of_day,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
}
