package models

import "time"

// Priority of a todo.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Recurring describes an optional repetition rule for a todo.
type Recurring struct {
	Type  string `json:"type"` // weekly or monthly
	Times int    `json:"times"`
}

// Todo represents a one-off task with a deadline.
type Todo struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Recurring   *Recurring `json:"recurring,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TodoCommand is the message payload for todo mutations on Kafka.
type TodoCommand struct {
	Action      string     `json:"action"` // create, update, delete
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Recurring   *Recurring `json:"recurring,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
}
