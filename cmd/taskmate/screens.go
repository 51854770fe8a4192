package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func progressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show average progress and tasks per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.board.Refresh(cmd.Context())
			renderProgress(a.out, a.paint, a.board.Progress(), a.board.Breakdown())
			return nil
		},
	}
}

func themeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the active theme",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fmt.Fprintf(a.out, "Tema: %s\n", a.themes.Current().Mode)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := a.themes.Toggle(cmd.Context())
			a.paint.settings = settings
			fmt.Fprintf(a.out, "Tema: %s\n", settings.Mode)
			return nil
		},
	})
	return cmd
}

func diagCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diag",
		Short: "Check connectivity to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				healthy           bool
				nTasks, nCategory int
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				healthy = a.api.Ping(gctx)
				return nil
			})
			g.Go(func() error {
				nTasks = len(a.api.LoadTasks(gctx))
				return nil
			})
			g.Go(func() error {
				nCategory = len(a.api.LoadCategories(gctx))
				return nil
			})
			_ = g.Wait()

			p := a.paint
			health := p.fg(p.settings.Danger, "false")
			if healthy {
				health = p.fg("#16a34a", "true")
			}
			fmt.Fprintln(a.out, p.text("Diagnostics"))
			fmt.Fprintf(a.out, "%s %s\n", p.subtext("API_BASE:"), p.text(a.api.BaseURL()))
			fmt.Fprintf(a.out, "%s %s\n", p.subtext("API /health:"), health)
			fmt.Fprintf(a.out, "%s %d\n", p.subtext("Tasks fetched:"), nTasks)
			fmt.Fprintf(a.out, "%s %d\n", p.subtext("Categories fetched:"), nCategory)
			return nil
		},
	}
}
