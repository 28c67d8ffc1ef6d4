// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
)

func twoFactorCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "twofactor",
		Summary: "Manage two-factor authentication",
		Description: "Enroll, confirm, inspect, or disable TOTP two-factor\n" +
			"authentication on the signed-in account. Enrollment is a two-step\n" +
			"handshake: 'enable' returns the shared secret, 'confirm' proves\n" +
			"the authenticator was set up correctly before 2FA turns on.",
		Subcommands: []*Command{
			twoFactorStatusCommand(ctx),
			twoFactorEnableCommand(ctx),
			twoFactorConfirmCommand(ctx),
			twoFactorDisableCommand(ctx),
		},
	}
}

func twoFactorStatusCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "status",
		Summary: "Show whether 2FA is enabled (exit 1 when disabled)",
		Usage:   "supporthub twofactor status",
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "twofactor/status"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			enabled, err := app.Client.TwoFactorStatus(ctx)
			if err != nil {
				return err
			}
			if !enabled {
				fmt.Println("two-factor authentication is disabled")
				return &ExitError{Code: 1}
			}
			fmt.Println("two-factor authentication is enabled")
			return nil
		},
	}
}

func twoFactorEnableCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "enable",
		Summary: "Begin 2FA enrollment",
		Usage:   "supporthub twofactor enable",
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "twofactor/enable"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			setup, err := app.Client.EnableTwoFactor(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("secret:  %s\n", setup.Secret)
			fmt.Printf("otpauth: %s\n", setup.OtpauthURL)
			fmt.Println("\nadd the secret to your authenticator app, then run")
			fmt.Println("'supporthub twofactor confirm' with the current code")
			return nil
		},
	}
}

func twoFactorConfirmCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "confirm",
		Summary: "Finish 2FA enrollment with a code",
		Usage:   "supporthub twofactor confirm [CODE]",
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "twofactor/confirm"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			var code string
			if len(args) > 0 {
				code = args[0]
			} else if code, err = promptLine("code: "); err != nil {
				return err
			}
			if err := app.Client.ConfirmTwoFactor(ctx, code); err != nil {
				return err
			}
			fmt.Println("two-factor authentication enabled")
			return nil
		},
	}
}

func twoFactorDisableCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "disable",
		Summary: "Turn 2FA off",
		Usage:   "supporthub twofactor disable",
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "twofactor/disable"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Client.DisableTwoFactor(ctx); err != nil {
				return err
			}
			fmt.Println("two-factor authentication disabled")
			return nil
		},
	}
}
