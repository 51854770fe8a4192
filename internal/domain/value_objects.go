package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Title is a validated title value object (1-255 characters).
type Title struct {
	value string
}

// NewTitle creates a new Title, validating the input.
func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return Title{}, ErrTitleRequired
	}

	if len(s) > 255 {
		return Title{}, ErrTitleTooLong
	}

	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// NewPriority validates a priority name case-insensitively and returns its
// canonical spelling. An empty string yields DefaultPriority.
func NewPriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPriority, nil
	}
	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidPriority, s)
}

// NewStatus validates a status case-insensitively. An empty string yields DefaultStatus.
func NewStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultStatus, nil
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusDone):
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidStatus, s)
	}
}

// NewProgress validates a completion percentage.
func NewProgress(p int) (int, error) {
	if p < 0 || p > 100 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidProgress, p)
	}
	return p, nil
}

// NormalizeDate strips any time-of-day suffix, keeping only the date part:
// "2025-10-07T17:00:00.000Z" becomes "2025-10-07".
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	return s
}

// ParseDate parses a (possibly timestamped) date. ok is false for anything
// that is not a real calendar date.
func ParseDate(s string) (time.Time, bool) {
	d, err := time.Parse(DateLayout, NormalizeDate(s))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// NewDeadline normalizes a deadline for storage. Empty input clears the
// deadline (nil result); anything else must be a valid calendar date.
func NewDeadline(s string) (*string, error) {
	norm := NormalizeDate(s)
	if norm == "" {
		return nil, nil
	}
	if _, ok := ParseDate(norm); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDeadline, s)
	}
	return &norm, nil
}

// Today returns the calendar date of t in its own location, as YYYY-MM-DD.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}
