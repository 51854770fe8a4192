package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezkam/taskmate/internal/domain"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderCategories(a.out, a.paint, a.api.LoadCategories(cmd.Context()))
			return nil
		},
	}
	cmd.AddCommand(categoryAddCmd(a))
	return cmd
}

func categoryAddCmd(a *app) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "add KEY",
		Short: "Register a category and select it in the list filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.board.Refresh(ctx)
			a.board.SetFilters(a.loadFilters(ctx))

			category, err := a.board.AddCategory(ctx, args[0], color)
			switch {
			case errors.Is(err, domain.ErrCategoryExists):
				return errors.New("nama kategori sudah ada")
			case err != nil:
				return fmt.Errorf("failed to add category: %w", err)
			}

			a.saveFilters(ctx, a.board.Filters())
			fmt.Fprintf(a.out, "Kategori ditambahkan: %s %s %s\n", a.paint.fg(category.Color, "●"), category.Key, category.Color)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "hex colour such as #2563eb (default picked from the palette)")
	return cmd
}
