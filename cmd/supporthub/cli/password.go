// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
)

func passwordCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "password",
		Summary: "Password reset flow",
		Description: "Reset a forgotten password: 'reset' emails a reset token,\n" +
			"'verify' checks a token without consuming it, and 'confirm' sets\n" +
			"the new password.",
		Subcommands: []*Command{
			passwordResetCommand(ctx),
			passwordVerifyCommand(ctx),
			passwordConfirmCommand(ctx),
		},
	}
}

func passwordResetCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "reset",
		Summary: "Request a reset token by email",
		Usage:   "supporthub password reset EMAIL",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: supporthub password reset EMAIL")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "password/reset"))
			if err != nil {
				return err
			}
			if err := app.Client.RequestPasswordReset(ctx, args[0]); err != nil {
				return err
			}
			// The backend answers identically for unknown addresses, so
			// this message promises nothing about account existence.
			fmt.Println("if that address has an account, a reset email is on its way")
			return nil
		},
	}
}

func passwordVerifyCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "verify",
		Summary: "Check a reset token (exit 1 when invalid)",
		Usage:   "supporthub password verify TOKEN",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: supporthub password verify TOKEN")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "password/verify"))
			if err != nil {
				return err
			}
			if err := app.Client.VerifyPasswordReset(ctx, args[0]); err != nil {
				fmt.Println("token is invalid or expired")
				return &ExitError{Code: 1}
			}
			fmt.Println("token is valid")
			return nil
		},
	}
}

func passwordConfirmCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "confirm",
		Summary: "Set a new password with a reset token",
		Usage:   "supporthub password confirm TOKEN",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: supporthub password confirm TOKEN")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "password/confirm"))
			if err != nil {
				return err
			}

			password, err := promptPassword("new password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			if err := app.Client.ConfirmPasswordReset(ctx, args[0], password); err != nil {
				return err
			}
			fmt.Println("password updated, run 'supporthub login' to sign in")
			return nil
		},
	}
}
