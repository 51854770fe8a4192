package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezkam/taskmate/internal/domain"
	"github.com/rezkam/taskmate/internal/infrastructure/preferences"
	"github.com/rezkam/taskmate/internal/view"
)

// filtersKey is the preference the last filter selection is stored under.
const filtersKey = "filters"

type savedFilters struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// loadFilters restores the saved selection. Anything unreadable yields the
// defaults.
func (a *app) loadFilters(ctx context.Context) view.Filters {
	data, err := a.prefs.Get(ctx, filtersKey)
	if err != nil {
		if !errors.Is(err, preferences.ErrNotFound) {
			slog.WarnContext(ctx, "failed to load filters", "error", err)
		}
		return view.DefaultFilters()
	}

	var s savedFilters
	if err := json.Unmarshal(data, &s); err != nil {
		slog.WarnContext(ctx, "ignoring malformed filters", "error", err)
		return view.DefaultFilters()
	}
	f := view.Filters{Status: view.ParseStatusFilter(s.Status), Category: s.Category, Priority: s.Priority}
	if f.Category == "" {
		f.Category = view.All
	}
	if f.Priority == "" {
		f.Priority = view.All
	}
	return f
}

func (a *app) saveFilters(ctx context.Context, f view.Filters) {
	data, err := json.Marshal(savedFilters{Status: string(f.Status), Category: f.Category, Priority: f.Priority})
	if err == nil {
		err = a.prefs.Put(ctx, filtersKey, data)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to save filters", "error", err)
	}
}

// filterFlags are the --status, --category and --priority flags shared by
// list and filter.
type filterFlags struct {
	status   string
	category string
	priority string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.status, "status", "", "all, todo or done")
	cmd.Flags().StringVar(&ff.category, "category", "", "category key or all")
	cmd.Flags().StringVar(&ff.priority, "priority", "", "High, Medium, Low or all")
}

// apply overrides f with the flags that were set. Category names match
// registered keys ignoring case; priorities take their canonical spelling.
func (ff *filterFlags) apply(cmd *cobra.Command, f view.Filters, categories []domain.Category) (view.Filters, error) {
	if cmd.Flags().Changed("status") {
		status := view.StatusFilter(strings.ToLower(ff.status))
		if view.ParseStatusFilter(string(status)) != status {
			return f, fmt.Errorf("unknown status filter %q", ff.status)
		}
		f.Status = status
	}
	if cmd.Flags().Changed("category") {
		f.Category = ff.category
		if strings.EqualFold(ff.category, view.All) {
			f.Category = view.All
		} else if c, ok := domain.FindCategory(categories, ff.category); ok {
			f.Category = c.Key
		}
	}
	if cmd.Flags().Changed("priority") {
		if strings.EqualFold(ff.priority, view.All) {
			f.Priority = view.All
		} else {
			p, err := domain.NewPriority(ff.priority)
			if err != nil {
				return f, err
			}
			f.Priority = string(p)
		}
	}
	return f, nil
}

func filterCmd(a *app) *cobra.Command {
	var (
		ff    filterFlags
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show or change the saved list filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			f := a.loadFilters(ctx)
			if reset {
				f = view.DefaultFilters()
			}
			f, err := ff.apply(cmd, f, a.api.LoadCategories(ctx))
			if err != nil {
				return err
			}
			a.saveFilters(ctx, f)
			renderFilters(a.out, a.paint, f)
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().BoolVar(&reset, "reset", false, "show everything")
	return cmd
}
