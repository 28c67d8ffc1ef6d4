// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/authflow"
	"github.com/KhalidiZib/supporthub/lib/authz"
	"github.com/KhalidiZib/supporthub/lib/cascade"
	"github.com/KhalidiZib/supporthub/lib/listview"
	"github.com/KhalidiZib/supporthub/lib/session"
	"github.com/KhalidiZib/supporthub/lib/tui"
)

// requestTimeout bounds every backend call issued from the UI loop.
const requestTimeout = 30 * time.Second

// screen identifies which top-level view the model is showing.
type screen int

const (
	screenLogin screen = iota
	screenStepUp
	screenList
	screenDetail
	screenCreate
)

// Config configures the help desk viewer model.
type Config struct {
	// Client performs all backend calls. Required.
	Client *api.Client

	// Sessions is the session store. Restore must have settled before
	// the program starts. Required.
	Sessions *session.Manager

	// PageSize is the server page size for the ticket list.
	PageSize int

	// Theme is the color scheme. Zero value falls back to
	// tui.DefaultTheme.
	Theme tui.Theme

	// Keys is the key binding set. Zero value falls back to
	// DefaultKeyMap.
	Keys KeyMap

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Model is the bubbletea model for the full-screen help desk client.
// It owns the login flow, the role-scoped ticket list, the ticket
// detail view, and the new-ticket form.
type Model struct {
	client   *api.Client
	sessions *session.Manager
	flow     *authflow.Flow
	theme    tui.Theme
	keys     KeyMap
	logger   *slog.Logger
	pageSize int

	screen screen
	width  int
	height int

	// Login screen.
	emailInput    textinput.Model
	passwordInput textinput.Model
	codeInput     textinput.Model
	loginFocus    int // 0 = email, 1 = password.
	flowErr       string
	submitting    bool

	// Ticket list.
	tickets  *listview.View[api.Ticket, api.TicketFilters]
	cursor   int
	spin     spinner.Model
	dropdown *tui.DropdownOverlay

	// Ticket detail.
	ticket        *api.Ticket
	detailOffset  int
	commentInput  textinput.Model
	composing     bool
	nextLocalID   int64 // Placeholder IDs for optimistic comments, always negative.
	detailLoading bool

	// New-ticket form.
	form createForm

	unread    int
	statusBar string
}

// New creates the model. The initial screen is decided by the settled
// session: signed in goes straight to the list, signed out to login.
func New(config Config) *Model {
	if config.Client == nil {
		panic("helpdeskui: Client is required")
	}
	if config.Sessions == nil {
		panic("helpdeskui: Sessions is required")
	}
	theme := config.Theme
	if theme.NormalText == "" {
		theme = tui.DefaultTheme
	}
	keys := config.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap
	}
	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	code := textinput.New()
	code.Placeholder = "6-digit code"
	code.CharLimit = 6

	comment := textinput.New()
	comment.Placeholder = "write a comment"
	comment.CharLimit = 2000

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	model := &Model{
		client:   config.Client,
		sessions: config.Sessions,
		theme:    theme,
		keys:     keys,
		logger:   logger,
		pageSize: pageSize,

		emailInput:    email,
		passwordInput: password,
		codeInput:     code,
		commentInput:  comment,
		spin:          spin,

		tickets:     listview.New[api.Ticket](pageSize, api.TicketFilters{}),
		nextLocalID: -1,
	}
	model.flow = authflow.New(authflow.Config{
		Client:   config.Client,
		Sessions: config.Sessions,
		Logger:   logger,
	})
	model.form = newCreateForm()

	if _, ok := config.Sessions.Current(); ok {
		model.screen = screenList
	} else {
		model.screen = screenLogin
	}
	return model
}

// UnreadMsg delivers a fresh unread-notification count. Sent from
// outside the program by the notification poller via Program.Send.
type UnreadMsg struct {
	Count int
}

// SessionExpiredMsg is sent from outside the program when the session
// manager reports a forced logout (the backend rejected the token).
type SessionExpiredMsg struct{}

type credentialsResultMsg struct{ err error }

type codeResultMsg struct{ err error }

type ticketPageMsg struct {
	request listview.Request[api.TicketFilters]
	page    api.Page[api.Ticket]
	err     error
}

type ticketMsg struct {
	ticket *api.Ticket
	err    error
}

type commentResultMsg struct {
	ticketID int64
	localID  int64
	comment  *api.Comment
	err      error
}

type categoriesMsg struct {
	categories []api.Category
	err        error
}

type locationsMsg struct {
	fetch cascade.ChildFetch
	nodes []api.LocationNode
	err   error
}

type agentsMsg struct {
	agents []api.User
	err    error
}

type createdTicketMsg struct {
	ticket *api.Ticket
	err    error
}

// Init starts the spinner and, when already signed in, the first list
// fetch.
func (model *Model) Init() tea.Cmd {
	commands := []tea.Cmd{model.spin.Tick}
	if model.screen == screenList {
		commands = append(commands, model.fetchTickets(model.tickets.Reload()))
	}
	return tea.Batch(commands...)
}

// Update is the top-level message dispatcher.
func (model *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		return model, nil

	case spinner.TickMsg:
		var command tea.Cmd
		model.spin, command = model.spin.Update(msg)
		return model, command

	case UnreadMsg:
		model.unread = msg.Count
		return model, nil

	case SessionExpiredMsg:
		// The backend invalidated the token mid-session. Drop all
		// screen state and return to login.
		model.screen = screenLogin
		model.ticket = nil
		model.unread = 0
		model.flow = authflow.New(authflow.Config{
			Client:   model.client,
			Sessions: model.sessions,
			Logger:   model.logger,
		})
		model.flowErr = "session expired, sign in again"
		model.passwordInput.SetValue("")
		return model, nil

	case credentialsResultMsg, codeResultMsg:
		return model.updateLoginResult(msg)

	case ticketPageMsg:
		if model.tickets.Apply(msg.request, msg.page, msg.err) {
			if model.cursor >= len(msg.page.Content) {
				model.cursor = max(0, len(msg.page.Content)-1)
			}
		}
		if msg.err != nil && !model.tickets.Loading() {
			model.statusBar = "list fetch failed: " + shortError(msg.err)
		}
		return model, nil

	case ticketMsg:
		model.detailLoading = false
		if msg.err != nil {
			model.statusBar = "ticket fetch failed: " + shortError(msg.err)
			return model, nil
		}
		model.ticket = msg.ticket
		model.screen = screenDetail
		model.detailOffset = 0
		return model, nil

	case commentResultMsg:
		return model.updateCommentResult(msg)

	case categoriesMsg, locationsMsg, createdTicketMsg:
		return model.updateForm(msg)

	case agentsMsg:
		if msg.err != nil {
			model.statusBar = "agent list failed: " + shortError(msg.err)
			return model, nil
		}
		model.dropdown = agentDropdown(msg.agents, model.ticket.ID)
		return model, nil

	case tea.KeyMsg:
		return model.updateKey(msg)
	}

	return model, nil
}

// updateKey routes keyboard input to the current screen.
func (model *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The dropdown captures all input while open.
	if model.dropdown != nil {
		return model.updateDropdown(msg)
	}

	switch model.screen {
	case screenLogin, screenStepUp:
		return model.updateLogin(msg)
	case screenList:
		return model.updateList(msg)
	case screenDetail:
		return model.updateDetail(msg)
	case screenCreate:
		return model.updateCreate(msg)
	}
	return model, nil
}

// View renders the current screen with the shared header and footer.
func (model *Model) View() string {
	var body string
	switch model.screen {
	case screenLogin, screenStepUp:
		body = model.viewLogin()
	case screenList:
		body = model.viewList()
	case screenDetail:
		body = model.viewDetail()
	case screenCreate:
		body = model.viewCreate()
	}

	view := model.viewHeader() + "\n" + body
	if model.statusBar != "" {
		errStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		view += "\n" + errStyle.Render(model.statusBar)
	}

	if model.dropdown != nil {
		view = tui.SpliceOverlay(view, model.dropdown.Render(model.theme),
			model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	return view
}

// viewHeader renders the persistent top bar: product name, identity,
// and the unread badge.
func (model *Model) viewHeader() string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := headerStyle.Render("SupportHub")
	if current, ok := model.sessions.Current(); ok {
		left += faint.Render(fmt.Sprintf("  %s (%s)", current.Name, strings.ToLower(string(current.Role))))
		if model.unread > 0 {
			badge := lipgloss.NewStyle().Foreground(model.theme.UnreadBadge)
			left += badge.Render(fmt.Sprintf("  ●%d", model.unread))
		}
	}
	return left
}

// currentRole returns the signed-in role, or "" when logged out.
func (model *Model) currentRole() api.Role {
	current, ok := model.sessions.Current()
	if !ok {
		return ""
	}
	return current.Role
}

// allowed evaluates the role gate for a guarded action. The backend
// enforces the same rule; the gate just avoids the round trip.
func (model *Model) allowed(roles ...api.Role) bool {
	return authz.Decide(roles, model.sessions) == authz.Render
}

// fetchTickets executes one minted list request against the
// role-appropriate endpoint and reports back for fencing.
func (model *Model) fetchTickets(request listview.Request[api.TicketFilters]) tea.Cmd {
	client := model.client
	role := model.currentRole()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var page api.Page[api.Ticket]
		var err error
		switch role {
		case api.RoleAdmin:
			page, err = client.ListTickets(ctx, request.Page, request.Size, request.Filters)
		case api.RoleAgent:
			page, err = client.AssignedTickets(ctx, request.Page, request.Size, request.Filters)
		default:
			page, err = client.MyTickets(ctx, request.Page, request.Size, request.Filters)
		}
		return ticketPageMsg{request: request, page: page, err: err}
	}
}

func (model *Model) fetchTicket(id int64) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ticket, err := client.GetTicket(ctx, id)
		return ticketMsg{ticket: ticket, err: err}
	}
}

// shortError flattens an error chain into a one-line status message.
func shortError(err error) string {
	message := err.Error()
	if index := strings.IndexByte(message, '\n'); index >= 0 {
		message = message[:index]
	}
	return message
}
