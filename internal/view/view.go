// Package view turns a flat task list into what the home and progress
// screens show: filtered, sorted and grouped sections plus summary numbers.
//
// Every function is pure. The current date is always passed in so results
// depend only on the arguments.
package view

import (
	"cmp"
	"slices"
	"time"

	"github.com/rezkam/taskmate/internal/domain"
)

// All is the filter value that disables a filter.
const All = "all"

// StatusFilter selects tasks by completion.
type StatusFilter string

const (
	StatusAll  StatusFilter = All
	StatusTodo StatusFilter = "todo"
	StatusDone StatusFilter = "done"
)

// ParseStatusFilter maps user input to a StatusFilter. Unknown input yields StatusAll.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(s) {
	case StatusTodo, StatusDone:
		return StatusFilter(s)
	default:
		return StatusAll
	}
}

// Filters is the current filter selection. Category and Priority hold
// either All or a value compared verbatim with the task field.
type Filters struct {
	Status   StatusFilter
	Category string
	Priority string
}

// DefaultFilters shows everything.
func DefaultFilters() Filters {
	return Filters{Status: StatusAll, Category: All, Priority: All}
}

func (f Filters) normalized() Filters {
	if f.Status == "" {
		f.Status = StatusAll
	}
	if f.Category == "" {
		f.Category = All
	}
	if f.Priority == "" {
		f.Priority = All
	}
	return f
}

// Section is one titled group of tasks.
type Section struct {
	Title string
	Tasks []*domain.Task
}

// Match reports whether task passes every filter.
func (f Filters) Match(task *domain.Task) bool {
	f = f.normalized()

	switch f.Status {
	case StatusTodo:
		if task.IsDone() {
			return false
		}
	case StatusDone:
		if !task.IsDone() {
			return false
		}
	}

	if f.Category != All && task.CategoryOrDefault() != f.Category {
		return false
	}
	if f.Priority != All && string(task.PriorityOrDefault()) != f.Priority {
		return false
	}
	return true
}

// Filter returns the tasks that match f, in input order.
func Filter(tasks []*domain.Task, f Filters) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a stably sorted copy of tasks: higher priority weight first,
// then earlier deadline. Tasks without a usable deadline go after every task
// that has one and keep their relative order.
func Sort(tasks []*domain.Task) []*domain.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, compareTasks)
	return out
}

func compareTasks(a, b *domain.Task) int {
	if c := cmp.Compare(b.PriorityOrDefault().Weight(), a.PriorityOrDefault().Weight()); c != 0 {
		return c
	}

	da, okA := a.DeadlineDate()
	db, okB := b.DeadlineDate()
	switch {
	case okA && okB:
		return da.Compare(db)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// Group splits sorted tasks into sections by category, in the order each
// category first appears. With a category filter set the result is a single
// section titled with the filter value, even when it holds no tasks.
func Group(sorted []*domain.Task, categoryFilter string) []Section {
	if categoryFilter != "" && categoryFilter != All {
		return []Section{{Title: categoryFilter, Tasks: sorted}}
	}

	var sections []Section
	index := make(map[string]int)
	for _, t := range sorted {
		key := t.CategoryOrDefault()
		i, ok := index[key]
		if !ok {
			i = len(sections)
			index[key] = i
			sections = append(sections, Section{Title: key})
		}
		sections[i].Tasks = append(sections[i].Tasks, t)
	}
	return sections
}

// Build runs filter, sort and group.
func Build(tasks []*domain.Task, f Filters) []Section {
	f = f.normalized()
	return Group(Sort(Filter(tasks, f)), f.Category)
}

// dateOf returns midnight UTC of t's calendar date in t's own location, so
// it compares directly with parsed deadlines.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsOverdue reports whether task has a valid deadline before today and is not done.
func IsOverdue(task *domain.Task, today time.Time) bool {
	if task.IsDone() {
		return false
	}
	d, ok := task.DeadlineDate()
	if !ok {
		return false
	}
	return d.Before(dateOf(today))
}
