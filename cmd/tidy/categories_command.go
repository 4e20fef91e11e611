package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidy/internal/catalog"
	"tidy/internal/fileops"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Show or apply the category registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCategories(cmd, ctx)
		},
	}

	categoriesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories with their folder numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCategories(cmd, ctx)
		},
	})
	categoriesCmd.AddCommand(newCategoriesApplyCommand(ctx))

	return categoriesCmd
}

func listCategories(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	registry, err := catalog.NewRegistry(cfg.Categories)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(cfg.Categories)+1)
	for _, cat := range registry.Categories() {
		rows = append(rows, []string{fmt.Sprintf("%02d", cat.Number), cat.Name, cat.FolderName()})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Category", "Folder"}, rows, 1))
	return nil
}

func newCategoriesApplyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Create and renumber destination folders to match the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			registry, err := catalog.NewRegistry(cfg.Categories)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			renamed, err := fileops.ApplyNumbering(cfg.Paths.DestinationDir, registry)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, pair := range renamed {
				fmt.Fprintln(out, "renamed", pair)
			}
			fmt.Fprintf(out, "Destination structure up to date at %s\n", cfg.Paths.DestinationDir)
			return nil
		},
	}
}
