// Package theme holds the light and dark palettes and the persisted
// light/dark choice. Renderers receive a Settings value explicitly.
package theme

import (
	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/view"
)

// Mode is the colour scheme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts exactly "light" or "dark".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), true
	default:
		return "", false
	}
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// StatusColors styles a task row by deadline state.
type StatusColors struct {
	Background string
	Border     string
	Text       string
}

// Palette is the set of colours a renderer needs.
type Palette struct {
	Mode               Mode
	Background         string
	Card               string
	Border             string
	Text               string
	Subtext            string
	ProgressBackground string
	ProgressFill       string
	Danger             string
	Overdue            StatusColors
	Future             StatusColors
	Today              StatusColors
}

// LightPalette is the default light scheme.
var LightPalette = Palette{
	Mode:               Light,
	Background:         "#f8fafc",
	Card:               "#ffffff",
	Border:             "#e2e8f0",
	Text:               "#0f172a",
	Subtext:            "#475569",
	ProgressBackground: "#e5e7eb",
	ProgressFill:       "#2563eb",
	Danger:             "#ef4444",
	Overdue:            StatusColors{Background: "#fff1f2", Border: "#fecaca", Text: "#dc2626"},
	Future:             StatusColors{Background: "#fffbeb", Border: "#fde68a", Text: "#92400e"},
	Today:              StatusColors{Background: "#eff6ff", Border: "#bfdbfe", Text: "#1e3a8a"},
}

// DarkPalette is the default dark scheme.
var DarkPalette = Palette{
	Mode:               Dark,
	Background:         "#0f172a",
	Card:               "#1e293b",
	Border:             "#334155",
	Text:               "#f1f5f9",
	Subtext:            "#94a3b8",
	ProgressBackground: "#334155",
	ProgressFill:       "#3b82f6",
	Danger:             "#dc2626",
	Overdue:            StatusColors{Background: "#3f1d1d", Border: "#7f1d1d", Text: "#fca5a5"},
	Future:             StatusColors{Background: "#3a2e0d", Border: "#854d0e", Text: "#facc15"},
	Today:              StatusColors{Background: "#1e3a8a", Border: "#3b82f6", Text: "#bfdbfe"},
}

// PaletteFor returns the palette of m.
func PaletteFor(m Mode) Palette {
	if m == Dark {
		return DarkPalette
	}
	return LightPalette
}

// Deadline returns the row colours for a deadline state. ok is false for
// tasks without a deadline, which use the plain card colours.
func (p Palette) Deadline(kind view.DeadlineKind) (StatusColors, bool) {
	switch kind {
	case view.DeadlineOverdue:
		return p.Overdue, true
	case view.DeadlineToday:
		return p.Today, true
	case view.DeadlineFuture:
		return p.Future, true
	default:
		return StatusColors{}, false
	}
}

// PriorityColor is the badge colour of a priority. Unknown values use the
// Low colour, matching how they sort.
func PriorityColor(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "#dc2626"
	case domain.PriorityMedium:
		return "#d97706"
	default:
		return "#16a34a"
	}
}

// Settings is the active theme handed to renderers.
type Settings struct {
	Palette
}

// IsDark reports whether the dark scheme is active.
func (s Settings) IsDark() bool {
	return s.Mode == Dark
}
