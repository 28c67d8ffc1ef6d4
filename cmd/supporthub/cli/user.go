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

func userCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "user",
		Summary: "Manage accounts (admin) and your own profile",
		Subcommands: []*Command{
			userListCommand(ctx),
			userSearchCommand(ctx),
			userShowCommand(ctx),
			userCreateCommand(ctx),
			userUpdateCommand(ctx),
			userToggleCommand(ctx),
			userDeleteCommand(ctx),
			userProfileCommand(ctx),
			userAvatarCommand(ctx),
		},
	}
}

func parseRole(value string) (api.Role, error) {
	if value == "" {
		return "", nil
	}
	role := api.Role(strings.ToUpper(value))
	switch role {
	case api.RoleAdmin, api.RoleAgent, api.RoleCustomer:
		return role, nil
	}
	return "", fmt.Errorf("unknown role %q (expected ADMIN, AGENT, or CUSTOMER)", value)
}

func userListCommand(ctx context.Context) *Command {
	var page, size int
	var roleFlag string
	var asJSON bool

	return &Command{
		Name:    "list",
		Summary: "List accounts (admin)",
		Usage:   "supporthub user list [--role ROLE] [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.IntVar(&page, "page", 0, "zero-based page number")
			flags.IntVar(&size, "size", 20, "page size")
			flags.StringVar(&roleFlag, "role", "", "filter by role (ADMIN, AGENT, CUSTOMER)")
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			role, err := parseRole(roleFlag)
			if err != nil {
				return err
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/list"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			result, err := app.Client.ListUsers(ctx, page, size, role)
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(result)
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tENABLED")
			for _, user := range result.Content {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n",
					user.ID, user.Name, user.Email, user.Role, user.Enabled)
			}
			return tw.Flush()
		},
	}
}

func userShowCommand(ctx context.Context) *Command {
	var asJSON bool
	return &Command{
		Name:    "show",
		Summary: "Show one account (admin)",
		Usage:   "supporthub user show ID [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one user ID is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID %q", args[0])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/show"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			user, err := app.Client.GetUser(ctx, id)
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(user)
			}
			fmt.Printf("%d %s <%s> role=%s enabled=%t\n",
				user.ID, user.Name, user.Email, user.Role, user.Enabled)
			return nil
		},
	}
}

func userCreateCommand(ctx context.Context) *Command {
	var name, email, roleFlag string

	return &Command{
		Name:    "create",
		Summary: "Provision an account (admin)",
		Usage:   "supporthub user create --name NAME --email EMAIL --role ROLE",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "full name")
			flags.StringVar(&email, "email", "", "account email")
			flags.StringVar(&roleFlag, "role", string(api.RoleAgent), "role (ADMIN, AGENT, CUSTOMER)")
			return flags
		},
		Run: func(args []string) error {
			if name == "" || email == "" {
				return fmt.Errorf("--name and --email are required")
			}
			role, err := parseRole(roleFlag)
			if err != nil {
				return err
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/create"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			password, err := promptPassword("initial password: ")
			if err != nil {
				return err
			}
			user, err := app.Client.CreateUser(ctx, api.CreateUserRequest{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created user %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}
}

func userSearchCommand(ctx context.Context) *Command {
	var asJSON bool
	return &Command{
		Name:    "search",
		Summary: "Search accounts by name or email (admin)",
		Usage:   "supporthub user search QUERY [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("search", pflag.ContinueOnError)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return Validation("a search query is required")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/search"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			result, err := app.Client.SearchUsers(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(result)
			}
			for _, user := range result.Content {
				fmt.Printf("%d  %s <%s> %s\n", user.ID, user.Name, user.Email, user.Role)
			}
			return nil
		},
	}
}

func userUpdateCommand(ctx context.Context) *Command {
	var name, email string
	return &Command{
		Name:    "update",
		Summary: "Update another account's name or email (admin)",
		Usage:   "supporthub user update ID [--name NAME] [--email EMAIL]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "new display name")
			flags.StringVar(&email, "email", "", "new email address")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return Validation("exactly one user ID is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return Validation("invalid user ID %q", args[0])
			}
			if name == "" && email == "" {
				return Validation("nothing to update (set --name or --email)")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/update"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			user, err := app.Client.UpdateUser(ctx, id, api.UpdateUserRequest{Name: name, Email: email})
			if err != nil {
				return err
			}
			fmt.Printf("updated user %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}
}

func userToggleCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "toggle",
		Summary: "Enable or disable an account (admin)",
		Usage:   "supporthub user toggle ID",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one user ID is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID %q", args[0])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/toggle"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			user, err := app.Client.ToggleUserStatus(ctx, id)
			if err != nil {
				return err
			}
			state := "disabled"
			if user.Enabled {
				state = "enabled"
			}
			fmt.Printf("user %d is now %s\n", user.ID, state)
			return nil
		},
	}
}

func userDeleteCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "delete",
		Summary: "Delete an account (admin)",
		Usage:   "supporthub user delete ID",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one user ID is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID %q", args[0])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/delete"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Client.DeleteUser(ctx, id); err != nil {
				return err
			}
			fmt.Printf("user %d deleted\n", id)
			return nil
		},
	}
}

func userProfileCommand(ctx context.Context) *Command {
	var name, email string
	var asJSON bool

	return &Command{
		Name:    "profile",
		Summary: "Show or update your own profile",
		Usage:   "supporthub user profile [--name NAME] [--email EMAIL]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("profile", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "new display name")
			flags.StringVar(&email, "email", "", "new email address")
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/profile"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			var user *api.User
			if name != "" || email != "" {
				user, err = app.Client.UpdateMyProfile(ctx, api.UpdateUserRequest{Name: name, Email: email})
				if err != nil {
					return err
				}
				// Keep the cached session identity in step.
				app.Sessions.UpdateUser(user.Name, user.Email, user.AvatarURL)
			} else if user, err = app.Client.MyProfile(ctx); err != nil {
				return err
			}

			if asJSON {
				return WriteJSON(user)
			}
			fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}

func userAvatarCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "avatar",
		Summary: "Upload a profile picture",
		Usage:   "supporthub user avatar FILE",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one file path is required")
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "user/avatar"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			user, err := app.Client.UploadAvatar(ctx, file.Name(), file)
			if err != nil {
				return err
			}
			app.Sessions.UpdateUser(user.Name, user.Email, user.AvatarURL)
			fmt.Println("avatar updated")
			return nil
		},
	}
}
