package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTitle(t *testing.T) {
	title, err := NewTitle("  Buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", title.String())

	_, err = NewTitle("   ")
	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewTitle(strings.Repeat("a", 256))
	assert.ErrorIs(t, err, ErrTitleTooLong)
}

func TestNewPriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"High", PriorityHigh, false},
		{"medium", PriorityMedium, false},
		{" LOW ", PriorityLow, false},
		{"", PriorityLow, false},
		{"Urgent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewPriority(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityWeight(t *testing.T) {
	assert.Greater(t, PriorityHigh.Weight(), PriorityMedium.Weight())
	assert.Greater(t, PriorityMedium.Weight(), PriorityLow.Weight())
	assert.Equal(t, PriorityLow.Weight(), Priority("Critical").Weight())
	assert.Equal(t, PriorityLow.Weight(), Priority("").Weight())
}

func TestNewStatus(t *testing.T) {
	s, err := NewStatus("DONE")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, s)

	s, err = NewStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s)

	_, err = NewStatus("blocked")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.Equal(t, StatusDone, StatusPending.Toggle())
	assert.Equal(t, StatusPending, StatusDone.Toggle())
}

func TestNewProgress(t *testing.T) {
	for _, p := range []int{0, 50, 100} {
		got, err := NewProgress(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	for _, p := range []int{-1, 101} {
		_, err := NewProgress(p)
		assert.ErrorIs(t, err, ErrInvalidProgress)
	}
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-10-07", NormalizeDate("2025-10-07T17:00:00.000Z"))
	assert.Equal(t, "2025-10-07", NormalizeDate("2025-10-07 17:00:00"))
	assert.Equal(t, "2025-10-07", NormalizeDate("2025-10-07"))
	assert.Equal(t, "", NormalizeDate(""))
}

func TestNewDeadline(t *testing.T) {
	d, err := NewDeadline("2025-10-07T17:00:00.000Z")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2025-10-07", *d)

	d, err = NewDeadline("")
	require.NoError(t, err)
	assert.Nil(t, d)

	for _, bad := range []string{"tomorrow", "2025-13-01", "2025-02-30"} {
		_, err := NewDeadline(bad)
		assert.True(t, errors.Is(err, ErrInvalidDeadline), bad)
	}
}

func TestTaskDefaults(t *testing.T) {
	task := &Task{ID: "1", Title: "x"}
	assert.Equal(t, DefaultCategory, task.CategoryOrDefault())
	assert.Equal(t, PriorityLow, task.PriorityOrDefault())

	task.Priority = "Whatever"
	assert.Equal(t, Priority("Whatever"), task.PriorityOrDefault())

	bad := "not-a-date"
	task.Deadline = &bad
	_, ok := task.DeadlineDate()
	assert.False(t, ok)
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(" Kuliah ", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "Kuliah", c.Key)
	assert.Equal(t, PickColor(1), c.Color)

	_, err = NewCategory(" ", "#fff", 0)
	assert.ErrorIs(t, err, ErrCategoryKeyRequired)

	found, ok := FindCategory([]Category{{Key: "Kuliah"}}, "kuliah")
	assert.True(t, ok)
	assert.Equal(t, "Kuliah", found.Key)
}
