// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/KhalidiZib/supporthub/lib/api"
)

func dashboardCommand(ctx context.Context) *Command {
	var asJSON bool
	return &Command{
		Name:    "dashboard",
		Summary: "Show the ticket summary for your role",
		Description: "Fetches the landing-page summary matching the signed-in role:\n" +
			"system-wide counts for admins, assigned workload for agents, and\n" +
			"your own tickets (with the most recent ones) for customers.",
		Usage: "supporthub dashboard [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "dashboard"))
			if err != nil {
				return err
			}
			current, err := app.RequireSession()
			if err != nil {
				return err
			}

			switch current.Role {
			case api.RoleAdmin:
				dashboard, err := app.Client.FetchAdminDashboard(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return WriteJSON(dashboard)
				}
				return printStats([]stat{
					{"Total tickets", dashboard.TotalTickets},
					{"Open tickets", dashboard.OpenTickets},
					{"Registered users", dashboard.TotalUsers},
					{"Categories", dashboard.TotalCategories},
				})

			case api.RoleAgent:
				dashboard, err := app.Client.FetchAgentDashboard(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return WriteJSON(dashboard)
				}
				return printStats([]stat{
					{"Assigned tickets", dashboard.AssignedTickets},
					{"Open", dashboard.OpenTickets},
					{"In progress", dashboard.InProgressTickets},
					{"Resolved", dashboard.ResolvedTickets},
				})

			default:
				dashboard, err := app.Client.FetchCustomerDashboard(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return WriteJSON(dashboard)
				}
				if err := printStats([]stat{
					{"Total tickets", dashboard.TotalTickets},
					{"Open", dashboard.OpenTickets},
					{"In progress", dashboard.InProgressTickets},
					{"Resolved", dashboard.ResolvedTickets},
				}); err != nil {
					return err
				}
				return printRecentTickets(dashboard.RecentTickets)
			}
		},
	}
}

type stat struct {
	label string
	value int64
}

func printStats(stats []stat) error {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	for _, entry := range stats {
		fmt.Fprintf(tw, "%s\t%d\n", entry.label, entry.value)
	}
	return tw.Flush()
}

func printRecentTickets(tickets []api.Ticket) error {
	if len(tickets) == 0 {
		fmt.Println("\nNo tickets yet.")
		return nil
	}
	fmt.Println("\nRecent tickets:")
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tCREATED")
	for _, ticket := range tickets {
		created := ""
		if !ticket.CreatedAt.IsZero() {
			created = ticket.CreatedAt.Local().Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", ticket.ID, ticket.Status, ticket.Title, created)
	}
	return tw.Flush()
}
