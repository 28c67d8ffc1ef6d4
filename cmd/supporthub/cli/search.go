// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/KhalidiZib/supporthub/lib/api"
)

func searchCommand(ctx context.Context) *Command {
	var entityType string
	var page, size int
	var asJSON bool

	return &Command{
		Name:    "search",
		Summary: "Search tickets, users, categories, and locations",
		Usage:   "supporthub search QUERY [--type TYPE] [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("search", pflag.ContinueOnError)
			flags.StringVar(&entityType, "type", "", "restrict to one entity type (TICKET, USER, CATEGORY, LOCATION)")
			flags.IntVar(&page, "page", 0, "zero-based page number")
			flags.IntVar(&size, "size", 20, "page size")
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Examples: []Example{
			{Command: "supporthub search \"printer\" --type TICKET"},
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a search query is required")
			}
			query := strings.Join(args, " ")

			app, err := NewApp(ctx, NewCommandLogger().With("command", "search"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			results, err := app.Client.Search(ctx, query, strings.ToUpper(entityType), page, size)
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(results)
			}

			if results.Total() == 0 {
				fmt.Println("no results")
				return nil
			}
			printHitSection("tickets", results.Tickets)
			printHitSection("users", results.Users)
			printHitSection("categories", results.Categories)
			printHitSection("locations", results.Locations)
			printHitSection("other", results.Other)
			return nil
		},
	}
}

func printHitSection(label string, hits []api.SearchHit) {
	if len(hits) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, hit := range hits {
		if hit.Snippet != "" {
			fmt.Printf("  %d  %s: %s\n", hit.ID, hit.Title, hit.Snippet)
		} else {
			fmt.Printf("  %d  %s\n", hit.ID, hit.Title)
		}
	}
}
