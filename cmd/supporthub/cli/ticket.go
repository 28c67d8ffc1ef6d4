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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/helpdeskui"
	"github.com/KhalidiZib/supporthub/lib/notify"
)

// ticketListFlags are the shared paging and filter flags for the three
// list commands.
type ticketListFlags struct {
	page     int
	size     int
	status   string
	priority string
	search   string
	asJSON   bool
}

func (f *ticketListFlags) bind(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.IntVar(&f.page, "page", 0, "zero-based page number")
	flags.IntVar(&f.size, "size", 0, "page size (default from config)")
	flags.StringVar(&f.status, "status", "", "filter by status (OPEN, IN_PROGRESS, RESOLVED, CLOSED)")
	flags.StringVar(&f.priority, "priority", "", "filter by priority (LOW, MEDIUM, HIGH, URGENT)")
	flags.StringVar(&f.search, "search", "", "filter by title or description text")
	flags.BoolVar(&f.asJSON, "json", false, "output as JSON")
	return flags
}

func (f *ticketListFlags) filters() (api.TicketFilters, error) {
	filters := api.TicketFilters{Search: f.search}
	if f.status != "" {
		status := api.TicketStatus(strings.ToUpper(f.status))
		if !validStatus(status) {
			return filters, fmt.Errorf("unknown status %q", f.status)
		}
		filters.Status = status
	}
	if f.priority != "" {
		priority := api.Priority(strings.ToUpper(f.priority))
		if !validPriority(priority) {
			return filters, fmt.Errorf("unknown priority %q", f.priority)
		}
		filters.Priority = priority
	}
	return filters, nil
}

func validStatus(status api.TicketStatus) bool {
	for _, known := range api.TicketStatuses {
		if status == known {
			return true
		}
	}
	return false
}

func validPriority(priority api.Priority) bool {
	for _, known := range api.Priorities {
		if priority == known {
			return true
		}
	}
	return false
}

func ticketCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "ticket",
		Summary: "Work with support tickets",
		Subcommands: []*Command{
			ticketListCommand(ctx),
			ticketMineCommand(ctx),
			ticketAssignedCommand(ctx),
			ticketShowCommand(ctx),
			ticketCreateCommand(ctx),
			ticketStatusCommand(ctx),
			ticketAssignCommand(ctx),
			ticketCommentCommand(ctx),
			ticketViewerCommand(ctx),
		},
	}
}

// ticketList is the common body of the three listing commands; they
// differ only in which endpoint they call.
func ticketList(ctx context.Context, name string, flags *ticketListFlags,
	fetch func(app *App, page, size int, filters api.TicketFilters) (api.Page[api.Ticket], error)) error {
	app, err := NewApp(ctx, NewCommandLogger().With("command", "ticket/"+name))
	if err != nil {
		return err
	}
	if _, err := app.RequireSession(); err != nil {
		return err
	}
	filters, err := flags.filters()
	if err != nil {
		return err
	}
	size := flags.size
	if size <= 0 {
		size = app.Config.UI.PageSize
	}

	page, err := fetch(app, flags.page, size, filters)
	if err != nil {
		return err
	}
	if flags.asJSON {
		return WriteJSON(page)
	}
	printTicketPage(page)
	return nil
}

func printTicketPage(page api.Page[api.Ticket]) {
	if len(page.Content) == 0 {
		fmt.Println("no tickets match")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tTITLE\tAGENT")
	for _, ticket := range page.Content {
		agent := "-"
		if ticket.AssignedAgent != nil {
			agent = ticket.AssignedAgent.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			ticket.ID, ticket.Status, ticket.Priority, ticket.Title, agent)
	}
	tw.Flush()
	if page.TotalPages > 1 {
		fmt.Printf("page %d/%d, %d tickets total\n", page.Page+1, page.TotalPages, page.TotalElements)
	}
}

func ticketListCommand(ctx context.Context) *Command {
	var flags ticketListFlags
	return &Command{
		Name:    "list",
		Summary: "List all tickets (admin)",
		Usage:   "supporthub ticket list [flags]",
		Flags:   func() *pflag.FlagSet { return flags.bind("list") },
		Examples: []Example{
			{Description: "Urgent open tickets", Command: "supporthub ticket list --status OPEN --priority URGENT"},
		},
		Run: func(args []string) error {
			return ticketList(ctx, "list", &flags,
				func(app *App, page, size int, filters api.TicketFilters) (api.Page[api.Ticket], error) {
					return app.Client.ListTickets(ctx, page, size, filters)
				})
		},
	}
}

func ticketMineCommand(ctx context.Context) *Command {
	var flags ticketListFlags
	return &Command{
		Name:    "mine",
		Summary: "List tickets you filed",
		Usage:   "supporthub ticket mine [flags]",
		Flags:   func() *pflag.FlagSet { return flags.bind("mine") },
		Run: func(args []string) error {
			return ticketList(ctx, "mine", &flags,
				func(app *App, page, size int, filters api.TicketFilters) (api.Page[api.Ticket], error) {
					return app.Client.MyTickets(ctx, page, size, filters)
				})
		},
	}
}

func ticketAssignedCommand(ctx context.Context) *Command {
	var flags ticketListFlags
	return &Command{
		Name:    "assigned",
		Summary: "List tickets assigned to you (agent)",
		Usage:   "supporthub ticket assigned [flags]",
		Flags:   func() *pflag.FlagSet { return flags.bind("assigned") },
		Run: func(args []string) error {
			return ticketList(ctx, "assigned", &flags,
				func(app *App, page, size int, filters api.TicketFilters) (api.Page[api.Ticket], error) {
					return app.Client.AssignedTickets(ctx, page, size, filters)
				})
		},
	}
}

func ticketShowCommand(ctx context.Context) *Command {
	var asJSON bool
	return &Command{
		Name:    "show",
		Summary: "Show one ticket with its comments",
		Usage:   "supporthub ticket show ID [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			id, err := ticketIDArg(args)
			if err != nil {
				return err
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "ticket/show"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			ticket, err := app.Client.GetTicket(ctx, id)
			if err != nil {
				return err
			}
			if asJSON {
				return WriteJSON(ticket)
			}
			printTicket(ticket)
			return nil
		},
	}
}

func printTicket(ticket *api.Ticket) {
	fmt.Printf("#%d %s\n", ticket.ID, ticket.Title)
	fmt.Printf("status=%s priority=%s", ticket.Status, ticket.Priority)
	if ticket.Category != nil {
		fmt.Printf(" category=%s", ticket.Category.Name)
	}
	if ticket.Location != nil {
		fmt.Printf(" location=%s", ticket.Location.Name)
	}
	if ticket.AssignedAgent != nil {
		fmt.Printf(" agent=%s", ticket.AssignedAgent.Name)
	}
	fmt.Printf("\n\n%s\n", ticket.Description)

	if len(ticket.Comments) > 0 {
		fmt.Printf("\ncomments (%d):\n", len(ticket.Comments))
		for _, comment := range ticket.Comments {
			author := "unknown"
			if comment.Author != nil {
				author = comment.Author.Name
			}
			fmt.Printf("  [%s] %s\n", author, comment.Content)
		}
	}
}

func ticketCreateCommand(ctx context.Context) *Command {
	var title, description, priority string
	var categoryID, locationID int64

	return &Command{
		Name:    "create",
		Summary: "File a new ticket (customer)",
		Description: "File a ticket non-interactively. The location must be a village\n" +
			"ID; use 'supporthub location children' to walk the hierarchy, or use\n" +
			"'supporthub ticket viewer' for the interactive cascading form.",
		Usage: "supporthub ticket create --title T --description D --category ID --location ID [--priority P]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVar(&title, "title", "", "ticket title")
			flags.StringVar(&description, "description", "", "problem description (markdown)")
			flags.Int64Var(&categoryID, "category", 0, "category ID")
			flags.Int64Var(&locationID, "location", 0, "village location ID")
			flags.StringVar(&priority, "priority", string(api.PriorityMedium), "priority (LOW, MEDIUM, HIGH, URGENT)")
			return flags
		},
		Run: func(args []string) error {
			if title == "" || description == "" || categoryID == 0 || locationID == 0 {
				return fmt.Errorf("--title, --description, --category, and --location are required")
			}
			requested := api.Priority(strings.ToUpper(priority))
			if !validPriority(requested) {
				return fmt.Errorf("unknown priority %q", priority)
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "ticket/create"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			ticket, err := app.Client.CreateTicket(ctx, api.CreateTicketRequest{
				Title:       title,
				Description: description,
				CategoryID:  categoryID,
				LocationID:  locationID,
				Priority:    requested,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created ticket #%d\n", ticket.ID)
			return nil
		},
	}
}

func ticketStatusCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "status",
		Summary: "Change a ticket's status (agent, admin)",
		Usage:   "supporthub ticket status ID STATUS",
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: supporthub ticket status ID STATUS")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket ID %q", args[0])
			}
			status := api.TicketStatus(strings.ToUpper(args[1]))
			if !validStatus(status) {
				return fmt.Errorf("unknown status %q", args[1])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "ticket/status"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			ticket, err := app.Client.UpdateTicketStatus(ctx, id, status)
			if err != nil {
				return err
			}
			fmt.Printf("ticket #%d is now %s\n", ticket.ID, ticket.Status)
			return nil
		},
	}
}

func ticketAssignCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "assign",
		Summary: "Assign a ticket to an agent (admin)",
		Usage:   "supporthub ticket assign TICKET_ID AGENT_ID",
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: supporthub ticket assign TICKET_ID AGENT_ID")
			}
			ticketID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket ID %q", args[0])
			}
			agentID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid agent ID %q", args[1])
			}
			app, err := NewApp(ctx, NewCommandLogger().With("command", "ticket/assign"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			ticket, err := app.Client.AssignTicket(ctx, ticketID, agentID)
			if err != nil {
				return err
			}
			agent := "nobody"
			if ticket.AssignedAgent != nil {
				agent = ticket.AssignedAgent.Name
			}
			fmt.Printf("ticket #%d assigned to %s\n", ticket.ID, agent)
			return nil
		},
	}
}

func ticketCommentCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "comment",
		Summary: "Add a comment to a ticket",
		Usage:   "supporthub ticket comment ID TEXT...",
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: supporthub ticket comment ID TEXT")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket ID %q", args[0])
			}
			content := strings.Join(args[1:], " ")
			app, err := NewApp(ctx, NewCommandLogger().With("command", "ticket/comment"))
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}
			comment, err := app.Client.CreateComment(ctx, id, content)
			if err != nil {
				return err
			}
			fmt.Printf("comment %d added to ticket #%d\n", comment.ID, id)
			return nil
		},
	}
}

// ticketViewerCommand launches the full-screen terminal client. The
// notification poller and the session manager's forced-logout callback
// feed the program from outside via Program.Send.
func ticketViewerCommand(ctx context.Context) *Command {
	return &Command{
		Name:    "viewer",
		Summary: "Open the interactive help desk client",
		Usage:   "supporthub ticket viewer",
		Run: func(args []string) error {
			logger := NewCommandLogger().With("command", "ticket/viewer")
			app, err := NewApp(ctx, logger)
			if err != nil {
				return err
			}

			model := helpdeskui.New(helpdeskui.Config{
				Client:   app.Client,
				Sessions: app.Sessions,
				PageSize: app.Config.UI.PageSize,
				Logger:   logger,
			})
			program := tea.NewProgram(model, tea.WithAltScreen())

			poller := notify.NewPoller(notify.PollerConfig{
				Client:   app.Client,
				Sessions: app.Sessions,
				Interval: app.Config.UI.NotificationPoll,
				OnCount: func(count int) {
					program.Send(helpdeskui.UnreadMsg{Count: count})
				},
				Logger: logger,
			})
			defer poller.Stop()

			// Session transitions drive both the poller and the UI: a
			// forced logout stops polling and bounces the viewer back to
			// the login screen.
			app.Sessions.OnChange(func(populated bool) {
				poller.Track(populated)
				if !populated {
					program.Send(helpdeskui.SessionExpiredMsg{})
				}
			})
			if _, ok := app.Sessions.Current(); ok {
				poller.Track(true)
			}

			_, err = program.Run()
			return err
		},
	}
}

func ticketIDArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("exactly one ticket ID is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ticket ID %q", args[0])
	}
	return id, nil
}
