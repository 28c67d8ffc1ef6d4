// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the supporthub command tree: authentication
// and session lifecycle, ticket operations, account and taxonomy
// management, notifications, search, and the interactive full-screen
// viewer.
package cli

import (
	"context"

	"github.com/KhalidiZib/supporthub/lib/version"
)

// Root builds the top-level supporthub command.
func Root(ctx context.Context) *Command {
	return &Command{
		Name:    "supporthub",
		Summary: "Terminal client for the SupportHub help desk",
		Description: "supporthub is the terminal client for the SupportHub help desk:\n" +
			"sign in, browse and mutate tickets from the command line, or open\n" +
			"the interactive viewer with 'supporthub ticket viewer'.",
		Subcommands: []*Command{
			loginCommand(ctx),
			logoutCommand(ctx),
			whoamiCommand(ctx),
			registerCommand(ctx),
			twoFactorCommand(ctx),
			passwordCommand(ctx),
			dashboardCommand(ctx),
			ticketCommand(ctx),
			userCommand(ctx),
			categoryCommand(ctx),
			locationCommand(ctx),
			notificationCommand(ctx),
			searchCommand(ctx),
			versionCommand(),
		},
	}
}

func versionCommand() *Command {
	return &Command{
		Name:    "version",
		Summary: "Print the client version",
		Usage:   "supporthub version",
		Run: func(args []string) error {
			return WriteJSON(version.Info())
		},
	}
}
