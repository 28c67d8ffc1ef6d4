// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

func notificationCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "notification",
		Summary: "Read and acknowledge notifications",
		Subcommands: []*Command{
			notificationListCommand(ctx),
			notificationUnreadCommand(ctx),
			notificationReadCommand(ctx),
		},
	}
}

func notificationListCommand(ctx context.Context) *Command {
	var page, size int
	var asJSON bool

	return &Command{
		Name:    "list",
		Summary: "List your notifications",
		Usage:   "supporthub notification list [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.IntVar(&page, "page", 0, "zero-based page number")
			flags.IntVar(&size, "size", 20, "page size")
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "notification/list"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			result, err := app.Client.ListNotifications(ctx, page, size)
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(result)
			}
			if len(result.Content) == 0 {
				fmt.Println("no notifications")
				return nil
			}
			for _, notification := range result.Content {
				marker := " "
				if !notification.Read {
					marker = "*"
				}
				fmt.Printf("%s %d  %s\n", marker, notification.ID, notification.Message)
			}
			return nil
		},
	}
}

func notificationUnreadCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "unread",
		Summary: "Print the unread count (exit 1 when there are any)",
		Usage:   "supporthub notification unread",
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "notification/unread"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			count, err := app.Client.UnreadCount(ctx)
			if err != nil {
				return err
			}
			fmt.Println(count)
			if count > 0 {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}

func notificationReadCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "read",
		Summary: "Mark a notification as read",
		Usage:   "supporthub notification read ID",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one notification ID is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid notification ID %q", args[0])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "notification/read"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Client.MarkNotificationRead(ctx, id); err != nil {
				return err
			}
			fmt.Printf("notification %d marked read\n", id)
			return nil
		},
	}
}
