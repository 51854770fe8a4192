package board

import (
	"slices"
	"time"

	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/view"
)

// Today returns the board clock's current time.
func (b *Board) Today() time.Time {
	return b.now()
}

// Tasks returns a copy of the loaded tasks in server order.
func (b *Board) Tasks() []*domain.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneTasks(b.tasks)
}

// Task returns one loaded task.
func (b *Board) Task(id string) (*domain.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.find(id); i >= 0 {
		return b.tasks[i].Clone(), true
	}
	return nil, false
}

// Categories returns a copy of the loaded categories.
func (b *Board) Categories() []domain.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.categories)
}

// Filters returns the active filters.
func (b *Board) Filters() view.Filters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

// SetFilters replaces the active filters.
func (b *Board) SetFilters(f view.Filters) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filters = f
}

// Sections returns the filtered, sorted and grouped task list.
func (b *Board) Sections() []view.Section {
	b.mu.Lock()
	tasks, filters := cloneTasks(b.tasks), b.filters
	b.mu.Unlock()
	return view.Build(tasks, filters)
}

// Summary counts over all loaded tasks, ignoring filters.
func (b *Board) Summary() view.Summary {
	return view.Summarize(b.Tasks(), b.now())
}

// Progress returns the progress screen numbers.
func (b *Board) Progress() view.Progress {
	return view.ProgressOf(b.Tasks())
}

// Breakdown returns tasks per category for the progress screen.
func (b *Board) Breakdown() []view.Slice {
	b.mu.Lock()
	tasks, categories := cloneTasks(b.tasks), slices.Clone(b.categories)
	b.mu.Unlock()
	return view.Breakdown(tasks, categories)
}

func cloneTasks(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}
