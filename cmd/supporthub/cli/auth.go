// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/authflow"
)

// promptPassword reads a password from the terminal without echo. When
// stdin is not a terminal (scripts), it falls back to a plain line
// read so piped input still works.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptLine reads one line from stdin with a prompt on stderr.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func loginCommand(ctx context.Context) *Command {
	var email string
	var password string

	return &Command{
		Name:    "login",
		Summary: "Sign in and persist the session token",
		Description: "Sign in with email and password. If the account has two-factor\n" +
			"authentication enabled, you are prompted for the current code from\n" +
			"your authenticator app before any session is stored.",
		Usage: "supporthub login [--email EMAIL]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&email, "email", "", "account email (prompted when omitted)")
			flags.StringVar(&password, "password", "", "account password (prompted when omitted; prefer the prompt)")
			return flags
		},
		Examples: []Example{
			{Description: "Interactive sign-in", Command: "supporthub login"},
			{Command: "supporthub login --email alice@example.com"},
		},
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "login"))
			if err != nil {
				return err
			}
			if current, ok := app.Sessions.Current(); ok {
				return fmt.Errorf("already signed in as %s (run 'supporthub logout' first)", current.Email)
			}

			if email == "" {
				if email, err = promptLine("email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword("password: "); err != nil {
					return err
				}
			}

			flow := authflow.New(authflow.Config{
				Client:   app.Client,
				Sessions: app.Sessions,
				Logger:   app.Logger,
			})
			if err := flow.SubmitCredentials(ctx, email, password); err != nil {
				return err
			}

			if flow.State() == authflow.StateStepUp {
				code, err := promptLine("two-factor code: ")
				if err != nil {
					return err
				}
				if err := flow.SubmitCode(ctx, code); err != nil {
					return err
				}
			}

			current, _ := app.Sessions.Current()
			fmt.Printf("signed in as %s (%s)\n", current.Email, strings.ToLower(string(current.Role)))
			return nil
		},
	}
}

func logoutCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "logout",
		Summary: "Discard the persisted session token",
		Usage:   "supporthub logout",
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "logout"))
			if err != nil {
				return err
			}
			app.Sessions.Logout()
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCommand(ctx context.Context) *Command {
	var asJSON bool

	return &Command{
		Name:    "whoami",
		Summary: "Show the signed-in account",
		Usage:   "supporthub whoami [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "whoami"))
			if err != nil {
				return err
			}
			current, err := app.RequireSession()
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(current)
			}
			fmt.Printf("%s <%s> role=%s\n", current.Name, current.Email, current.Role)
			return nil
		},
	}
}

func registerCommand(ctx context.Context) *Command {
	var name, email, phone string

	return &Command{
		Name:    "register",
		Summary: "Create a customer account",
		Usage:   "supporthub register --name NAME --email EMAIL [--phone PHONE]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "full name")
			flags.StringVar(&email, "email", "", "account email")
			flags.StringVar(&phone, "phone", "", "phone number (optional)")
			return flags
		},
		Run: func(args []string) error {
			if name == "" || email == "" {
				return fmt.Errorf("--name and --email are required")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "register"))
			if err != nil {
				return err
			}

			password, err := promptPassword("password: ")
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

			user, err := app.Client.Register(ctx, api.RegisterRequest{
				Name:     name,
				Email:    email,
				Password: password,
				Phone:    phone,
			})
			if err != nil {
				return err
			}
			fmt.Printf("account created for %s, run 'supporthub login' to sign in\n", user.Email)
			return nil
		},
	}
}
