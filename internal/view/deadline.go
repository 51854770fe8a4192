package view

import (
	"time"

	"github.com/rezkam/taskmate/internal/domain"
)

// DeadlineKind classifies a deadline relative to today.
type DeadlineKind string

const (
	DeadlineNone    DeadlineKind = "none"
	DeadlineOverdue DeadlineKind = "overdue"
	DeadlineToday   DeadlineKind = "today"
	DeadlineFuture  DeadlineKind = "future"
)

// DeadlineInfo is the badge shown next to a task. DaysLeft is set only for
// DeadlineFuture.
type DeadlineInfo struct {
	Kind     DeadlineKind
	DaysLeft int
}

// DeadlineOf classifies task's deadline. Absent or unparseable deadlines
// yield DeadlineNone. Completion status is not considered.
func DeadlineOf(task *domain.Task, today time.Time) DeadlineInfo {
	d, ok := task.DeadlineDate()
	if !ok {
		return DeadlineInfo{Kind: DeadlineNone}
	}

	days := int(d.Sub(dateOf(today)).Hours() / 24)
	switch {
	case days < 0:
		return DeadlineInfo{Kind: DeadlineOverdue}
	case days == 0:
		return DeadlineInfo{Kind: DeadlineToday}
	default:
		return DeadlineInfo{Kind: DeadlineFuture, DaysLeft: days}
	}
}
