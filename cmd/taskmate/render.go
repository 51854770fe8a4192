package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/ptr"
	"github.com/rezkam/taskmate/internal/theme"
	"github.com/rezkam/taskmate/internal/view"
)

const (
	progressBarWidth = 20
	shortIDLen       = 8
)

// painter colours text with the active palette using 24-bit ANSI escapes.
type painter struct {
	enabled  bool
	settings theme.Settings
}

func (p painter) fg(hex, s string) string {
	if !p.enabled {
		return s
	}
	r, g, b, ok := parseHex(hex)
	if !ok {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
}

func (p painter) text(s string) string    { return p.fg(p.settings.Text, s) }
func (p painter) subtext(s string) string { return p.fg(p.settings.Subtext, s) }

func parseHex(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// deadlineLabel is the badge text of a deadline state.
func deadlineLabel(info view.DeadlineInfo) string {
	switch info.Kind {
	case view.DeadlineOverdue:
		return "Overdue"
	case view.DeadlineToday:
		return "Deadline: Hari ini"
	case view.DeadlineFuture:
		return fmt.Sprintf("Sisa %d hari", info.DaysLeft)
	default:
		return ""
	}
}

func (p painter) progressBar(pct int) string {
	pct = max(0, min(100, pct))
	filled := pct * progressBarWidth / 100
	return p.fg(p.settings.ProgressFill, strings.Repeat("█", filled)) +
		p.fg(p.settings.ProgressBackground, strings.Repeat("░", progressBarWidth-filled))
}

func renderSummary(w io.Writer, p painter, s view.Summary) {
	overdue := fmt.Sprintf("Overdue: %d", s.Overdue)
	if s.Overdue > 0 {
		overdue = p.fg(p.settings.Danger, overdue)
	} else {
		overdue = p.text(overdue)
	}
	fmt.Fprintf(w, "%s   %s\n", p.text(fmt.Sprintf("Done: %d / %d", s.Done, s.Total)), overdue)
}

func renderFilters(w io.Writer, p painter, f view.Filters) {
	fmt.Fprintln(w, p.subtext(fmt.Sprintf("Status: %s  Kategori: %s  Prioritas: %s", f.Status, f.Category, f.Priority)))
}

func renderSections(w io.Writer, p painter, sections []view.Section, categories []domain.Category, today time.Time) {
	if len(sections) == 0 {
		fmt.Fprintln(w, p.subtext("Belum ada tugas."))
		return
	}
	for _, s := range sections {
		color := domain.FallbackCategoryColor
		if c, ok := domain.FindCategory(categories, s.Title); ok {
			color = c.Color
		}
		fmt.Fprintf(w, "\n%s\n", p.fg(color, s.Title))
		if len(s.Tasks) == 0 {
			fmt.Fprintln(w, p.subtext("  (kosong)"))
		}
		for _, t := range s.Tasks {
			renderTask(w, p, t, today)
		}
	}
}

func renderTask(w io.Writer, p painter, t *domain.Task, today time.Time) {
	check := "[ ]"
	if t.IsDone() {
		check = "[x]"
	}

	priority := t.PriorityOrDefault()
	line := fmt.Sprintf("  %s %s %s %s %3d%%",
		p.subtext(shortID(t.ID)),
		check,
		p.text(t.Title),
		p.fg(theme.PriorityColor(priority), "("+string(priority)+")"),
		t.Progress,
	)

	info := view.DeadlineOf(t, today)
	if label := deadlineLabel(info); label != "" {
		colors, _ := p.settings.Deadline(info.Kind)
		line += "  " + p.fg(colors.Text, label)
	}
	fmt.Fprintln(w, line)

	if desc := ptr.Deref(t.Description, ""); desc != "" {
		fmt.Fprintf(w, "      %s\n", p.subtext(desc))
	}
}

func renderTaskDetail(w io.Writer, p painter, t *domain.Task, today time.Time) {
	field := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", p.subtext(fmt.Sprintf("%-10s", name+":")), p.text(value))
	}
	field("ID", t.ID)
	field("Judul", t.Title)
	if t.Description != nil {
		field("Deskripsi", *t.Description)
	}
	if t.Deadline != nil {
		deadline := *t.Deadline
		if label := deadlineLabel(view.DeadlineOf(t, today)); label != "" {
			deadline += " (" + label + ")"
		}
		field("Deadline", deadline)
	}
	field("Kategori", t.CategoryOrDefault())
	field("Prioritas", string(t.PriorityOrDefault()))
	field("Status", string(t.Status))
	fmt.Fprintf(w, "%s %s %d%%\n", p.subtext(fmt.Sprintf("%-10s", "Progress:")), p.progressBar(t.Progress), t.Progress)
}

func renderCategories(w io.Writer, p painter, categories []domain.Category) {
	for _, c := range categories {
		fmt.Fprintf(w, "%s %s %s\n", p.fg(c.Color, "●"), p.text(c.Key), p.subtext(c.Color))
	}
}

func renderProgress(w io.Writer, p painter, progress view.Progress, breakdown []view.Slice) {
	fmt.Fprintln(w, p.text("Progress - Ringkasan"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s %d%%\n", p.subtext("Rata-rata Progress:"), p.progressBar(progress.Average), progress.Average)
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.text("Status Tugas"))
	fmt.Fprintf(w, "  Done: %d   Belum: %d\n", progress.Done, progress.NotDone)
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.text("Distribusi per Kategori"))
	if !view.HasData(breakdown) {
		fmt.Fprintln(w, p.subtext("  Belum ada data."))
		return
	}
	total := 0
	for _, s := range breakdown {
		total += s.Count
	}
	for _, s := range breakdown {
		fmt.Fprintf(w, "  %s %-16s %3d  %3d%%\n", p.fg(s.Color, "●"), s.Category, s.Count, s.Count*100/total)
	}
}
