// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/KhalidiZib/supporthub/lib/api"
)

func categoryCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "category",
		Summary: "Manage ticket categories",
		Subcommands: []*Command{
			categoryListCommand(ctx),
			categoryCreateCommand(ctx),
			categoryUpdateCommand(ctx),
			categoryDeleteCommand(ctx),
		},
	}
}

func categoryListCommand(ctx context.Context) *Command {
	var asJSON bool
	return &Command{
		Name:    "list",
		Summary: "List categories",
		Usage:   "supporthub category list [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "category/list"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			categories, err := app.Client.ListCategories(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(categories)
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
			for _, category := range categories {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", category.ID, category.Name, category.Description)
			}
			return tw.Flush()
		},
	}
}

func categoryCreateCommand(ctx context.Context) *Command {
	var description string
	return &Command{
		Name:    "create",
		Summary: "Add a category (admin)",
		Usage:   "supporthub category create NAME [--description TEXT]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVar(&description, "description", "", "category description")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one category name is required")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "category/create"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			category, err := app.Client.CreateCategory(ctx, api.CategoryRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created category %d (%s)\n", category.ID, category.Name)
			return nil
		},
	}
}

func categoryUpdateCommand(ctx context.Context) *Command {
	var name, description string
	return &Command{
		Name:    "update",
		Summary: "Rename or re-describe a category (admin)",
		Usage:   "supporthub category update ID [--name NAME] [--description TEXT]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "new name")
			flags.StringVar(&description, "description", "", "new description")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one category ID is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category ID %q", args[0])
			}
			if name == "" && description == "" {
				return fmt.Errorf("nothing to update (set --name or --description)")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "category/update"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			category, err := app.Client.UpdateCategory(ctx, id, api.CategoryRequest{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("updated category %d (%s)\n", category.ID, category.Name)
			return nil
		},
	}
}

func categoryDeleteCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "delete",
		Summary: "Delete a category (admin)",
		Usage:   "supporthub category delete ID",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one category ID is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category ID %q", args[0])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "category/delete"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Client.DeleteCategory(ctx, id); err != nil {
				return err
			}
			fmt.Printf("category %d deleted\n", id)
			return nil
		},
	}
}
