package view

import (
	"math"
	"slices"
	"time"

	"github.com/rezkam/taskmate/internal/domain"
)

// Summary is the header line of the home screen. It is computed over the
// unfiltered list.
type Summary struct {
	Total   int
	Done    int
	Overdue int
}

// Summarize counts done and overdue tasks.
func Summarize(tasks []*domain.Task, today time.Time) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsDone() {
			s.Done++
		}
		if IsOverdue(t, today) {
			s.Overdue++
		}
	}
	return s
}

// Progress is the progress screen summary.
type Progress struct {
	Average int
	Done    int
	NotDone int
}

// ProgressOf averages task progress, rounded to the nearest integer.
// An empty list averages to 0.
func ProgressOf(tasks []*domain.Task) Progress {
	var p Progress
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
		if t.IsDone() {
			p.Done++
		}
	}
	p.NotDone = len(tasks) - p.Done
	p.Average = int(math.Round(float64(sum) / float64(max(len(tasks), 1))))
	return p
}

// Slice is one category's share of the task list.
type Slice struct {
	Category string
	Color    string
	Count    int
}

// Breakdown counts tasks per category. Registered categories without tasks
// are included with a zero count. Slices are ordered by count, largest
// first; ties keep first-seen order (task categories, then registered ones).
func Breakdown(tasks []*domain.Task, categories []domain.Category) []Slice {
	var out []Slice
	index := make(map[string]int)

	add := func(key string, n int) {
		if i, ok := index[key]; ok {
			out[i].Count += n
			return
		}
		index[key] = len(out)
		out = append(out, Slice{Category: key, Count: n})
	}

	for _, t := range tasks {
		add(t.CategoryOrDefault(), 1)
	}
	for _, c := range categories {
		add(c.Key, 0)
	}

	for i := range out {
		out[i].Color = colorOf(categories, out[i].Category)
	}

	slices.SortStableFunc(out, func(a, b Slice) int {
		return b.Count - a.Count
	})
	return out
}

// HasData reports whether any slice has a non-zero count.
func HasData(breakdown []Slice) bool {
	return slices.ContainsFunc(breakdown, func(s Slice) bool { return s.Count > 0 })
}

func colorOf(categories []domain.Category, key string) string {
	for _, c := range categories {
		if c.Key == key && c.Color != "" {
			return c.Color
		}
	}
	return domain.FallbackCategoryColor
}
