package domain

import "time"

// Defaults applied when a task field is unset.
const (
	DefaultCategory = "Umum"
	DefaultPriority = PriorityLow
	DefaultStatus   = StatusPending
)

// Task is the central entity: a unit of work owned by nobody in particular.
//
// Category, Priority and Status may be empty when a row predates validation;
// readers must go through the *OrDefault accessors.
type Task struct {
	ID          string
	Title       string
	Description *string
	Deadline    *string // calendar date, YYYY-MM-DD
	Category    string
	Priority    Priority
	Status      Status
	Progress    int
	UpdatedAt   time.Time
}

// CategoryOrDefault returns the category key, falling back to DefaultCategory.
func (t *Task) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// PriorityOrDefault returns the raw priority, falling back to DefaultPriority.
// Unknown values are returned unchanged.
func (t *Task) PriorityOrDefault() Priority {
	if t.Priority == "" {
		return DefaultPriority
	}
	return t.Priority
}

// IsDone reports whether the task is completed.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// DeadlineDate parses the deadline. ok is false when the deadline is absent
// or not a valid calendar date.
func (t *Task) DeadlineDate() (time.Time, bool) {
	if t.Deadline == nil {
		return time.Time{}, false
	}
	return ParseDate(*t.Deadline)
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	return &c
}
