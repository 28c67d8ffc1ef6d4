// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/KhalidiZib/supporthub/lib/api"
)

func locationCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "location",
		Summary: "Browse and manage the location hierarchy",
		Description: "Locations form a five-level hierarchy: province, district,\n" +
			"sector, cell, village. Tickets are filed against a village; use\n" +
			"'top' and 'children' to walk down to one.",
		Subcommands: []*Command{
			locationListCommand(ctx),
			locationTopCommand(ctx),
			locationChildrenCommand(ctx),
			locationCreateCommand(ctx),
			locationDeleteCommand(ctx),
		},
	}
}

func printLocations(nodes []api.LocationNode, asJSON bool) error {
	if asJSON {
		return WriteJSON(nodes)
	}
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME")
	for _, node := range nodes {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", node.ID, node.Type, node.Name)
	}
	return tw.Flush()
}

func locationListCommand(ctx context.Context) *Command {
	var typeFlag string
	var parentID int64
	var page, size int
	var asJSON bool

	return &Command{
		Name:    "list",
		Summary: "List locations, paginated or filtered",
		Usage:   "supporthub location list [--type TYPE] [--parent ID] [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&typeFlag, "type", "", "restrict to one level (PROVINCE, DISTRICT, SECTOR, CELL, VILLAGE)")
			flags.Int64Var(&parentID, "parent", 0, "restrict to children of this node")
			flags.IntVar(&page, "page", 0, "zero-based page number")
			flags.IntVar(&size, "size", 50, "page size (ignored with filters)")
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			var locationType api.LocationType
			if typeFlag != "" {
				locationType = api.LocationType(strings.ToUpper(typeFlag))
				valid := false
				for _, known := range api.LocationTypes {
					if locationType == known {
						valid = true
						break
					}
				}
				if !valid {
					return Validation("unknown location type %q", typeFlag)
				}
			}

			app, err := NewApp(ctx, NewCommandLogger().With("command", "location/list"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			if parentID != 0 {
				nodes, err := app.Client.ListLocations(ctx, locationType, parentID)
				if err != nil {
					return err
				}
				return printLocations(nodes, asJSON)
			}
			if locationType != "" {
				nodes, err := app.Client.LocationsByType(ctx, locationType)
				if err != nil {
					return err
				}
				return printLocations(nodes, asJSON)
			}

			result, err := app.Client.PaginatedLocations(ctx, page, size)
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(result)
			}
			if err := printLocations(result.Content, false); err != nil {
				return err
			}
			if result.TotalPages > 1 {
				fmt.Printf("page %d/%d, %d locations total\n", result.Page+1, result.TotalPages, result.TotalElements)
			}
			return nil
		},
	}
}

func locationTopCommand(ctx context.Context) *Command {
	var asJSON bool
	return &Command{
		Name:    "top",
		Summary: "List the provinces",
		Usage:   "supporthub location top [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("top", pflag.ContinueOnError)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "location/top"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			nodes, err := app.Client.TopLevelLocations(ctx)
			if err != nil {
				return err
			}
			return printLocations(nodes, asJSON)
		},
	}
}

func locationChildrenCommand(ctx context.Context) *Command {
	var asJSON bool
	return &Command{
		Name:    "children",
		Summary: "List the children of a location",
		Usage:   "supporthub location children PARENT_ID [--json]",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one parent ID is required")
			}
			parentID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid location ID %q", args[0])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "location/children"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			nodes, err := app.Client.LocationsByParent(ctx, parentID)
			if err != nil {
				return err
			}
			return printLocations(nodes, asJSON)
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("children", pflag.ContinueOnError)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
	}
}

func locationCreateCommand(ctx context.Context) *Command {
	var typeFlag string
	var parentID int64

	return &Command{
		Name:    "create",
		Summary: "Add a location node (admin)",
		Usage:   "supporthub location create NAME --type TYPE [--parent ID]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVar(&typeFlag, "type", "", "level (PROVINCE, DISTRICT, SECTOR, CELL, VILLAGE)")
			flags.Int64Var(&parentID, "parent", 0, "parent location ID (required below PROVINCE)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one location name is required")
			}
			locationType := api.LocationType(strings.ToUpper(typeFlag))
			valid := false
			for _, known := range api.LocationTypes {
				if locationType == known {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("unknown location type %q", typeFlag)
			}
			if locationType != api.LocationProvince && parentID == 0 {
				return fmt.Errorf("--parent is required for %s", locationType)
			}

			app, err := NewApp(ctx, NewCommandLogger().With("command", "location/create"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			node, err := app.Client.CreateLocation(ctx, api.CreateLocationRequest{
				Name:     args[0],
				Type:     locationType,
				ParentID: parentID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created %s %d (%s)\n", strings.ToLower(string(node.Type)), node.ID, node.Name)
			return nil
		},
	}
}

func locationDeleteCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "delete",
		Summary: "Delete a location node (admin)",
		Usage:   "supporthub location delete ID",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one location ID is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid location ID %q", args[0])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "location/delete"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Client.DeleteLocation(ctx, id); err != nil {
				return err
			}
			fmt.Printf("location %d deleted\n", id)
			return nil
		},
	}
}
