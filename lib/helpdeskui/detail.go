// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/tui"
)

// updateDetail handles keyboard input on the ticket detail screen.
func (model *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys

	// The comment composer captures all input while focused.
	if model.composing {
		switch msg.String() {
		case "esc":
			model.composing = false
			model.commentInput.Blur()
			return model, nil
		case "enter":
			content := strings.TrimSpace(model.commentInput.Value())
			if content == "" {
				return model, nil
			}
			model.composing = false
			model.commentInput.Blur()
			model.commentInput.SetValue("")
			return model, model.postComment(content)
		}
		var command tea.Cmd
		model.commentInput, command = model.commentInput.Update(msg)
		return model, command
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return model, tea.Quit

	case key.Matches(msg, keys.Back):
		model.screen = screenList
		model.ticket = nil
		// The list may be stale after a mutation; refetch.
		return model, model.fetchTickets(model.tickets.Reload())

	case key.Matches(msg, keys.Up):
		if model.detailOffset > 0 {
			model.detailOffset--
		}
		return model, nil

	case key.Matches(msg, keys.Down):
		model.detailOffset++
		return model, nil

	case key.Matches(msg, keys.PageUp):
		model.detailOffset -= model.detailPageSize()
		if model.detailOffset < 0 {
			model.detailOffset = 0
		}
		return model, nil

	case key.Matches(msg, keys.PageDown):
		model.detailOffset += model.detailPageSize()
		return model, nil

	case key.Matches(msg, keys.Comment):
		model.composing = true
		model.commentInput.Focus()
		return model, nil

	case key.Matches(msg, keys.Status):
		if model.ticket != nil && model.allowed(api.RoleAgent, api.RoleAdmin) {
			model.dropdown = statusDropdown(fieldStatus, model.ticket.ID, false)
		}
		return model, nil

	case key.Matches(msg, keys.Assign):
		if model.ticket != nil && model.allowed(api.RoleAdmin) {
			return model, model.fetchAgents()
		}
		return model, nil

	case key.Matches(msg, keys.Refresh):
		if model.ticket != nil {
			return model, model.fetchTicket(model.ticket.ID)
		}
		return model, nil
	}

	return model, nil
}

// updateCommentResult resolves an optimistic comment: the placeholder
// is replaced by the server's copy on success, or rolled back on
// failure.
func (model *Model) updateCommentResult(msg commentResultMsg) (tea.Model, tea.Cmd) {
	if model.ticket == nil || model.ticket.ID != msg.ticketID {
		// The user navigated away; the list refetch on return will
		// pick up the server state.
		return model, nil
	}

	comments := model.ticket.Comments
	index := -1
	for i, comment := range comments {
		if comment.ID == msg.localID {
			index = i
			break
		}
	}
	if index < 0 {
		return model, nil
	}

	if msg.err != nil {
		// Roll the placeholder back and surface the failure.
		model.ticket.Comments = append(comments[:index], comments[index+1:]...)
		model.statusBar = "comment failed: " + shortError(msg.err)
		return model, nil
	}
	comments[index] = *msg.comment
	return model, nil
}

// postComment appends an optimistic placeholder immediately and sends
// the comment to the backend. Placeholder IDs are negative so they can
// never collide with server IDs.
func (model *Model) postComment(content string) tea.Cmd {
	ticketID := model.ticket.ID
	localID := model.nextLocalID
	model.nextLocalID--

	placeholder := api.Comment{
		ID:        localID,
		TicketID:  ticketID,
		Content:   content,
		CreatedAt: api.Timestamp{Time: time.Now()},
	}
	if current, ok := model.sessions.Current(); ok {
		placeholder.Author = &api.User{ID: current.ID, Name: current.Name, Role: current.Role}
	}
	model.ticket.Comments = append(model.ticket.Comments, placeholder)

	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		comment, err := client.CreateComment(ctx, ticketID, content)
		return commentResultMsg{ticketID: ticketID, localID: localID, comment: comment, err: err}
	}
}

func (model *Model) changeStatus(ticketID int64, status api.TicketStatus) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ticket, err := client.UpdateTicketStatus(ctx, ticketID, status)
		return ticketMsg{ticket: ticket, err: err}
	}
}

func (model *Model) assignAgent(ticketID, agentID int64) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ticket, err := client.AssignTicket(ctx, ticketID, agentID)
		return ticketMsg{ticket: ticket, err: err}
	}
}

func (model *Model) fetchAgents() tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := client.ListUsers(ctx, 0, 100, api.RoleAgent)
		return agentsMsg{agents: page.Content, err: err}
	}
}

func (model *Model) detailPageSize() int {
	if model.height > 8 {
		return model.height - 8
	}
	return 10
}

// viewDetail renders the ticket, its metadata, the markdown body, and
// the comment thread.
func (model *Model) viewDetail() string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if model.ticket == nil {
		return "\n  " + model.spin.View() + faint.Render(" loading ticket")
	}
	ticket := model.ticket

	width := model.width
	if width <= 0 {
		width = 100
	}
	contentWidth := width - 4

	var b strings.Builder
	b.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render(fmt.Sprintf("#%d %s", ticket.ID, ticket.Title)) + "\n")

	statusStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(ticket.Status))
	priorityStyle := lipgloss.NewStyle().Foreground(theme.PriorityColor(ticket.Priority))
	meta := "  " + statusStyle.Render(string(ticket.Status)) + "  " + priorityStyle.Render(string(ticket.Priority))
	if ticket.Category != nil {
		meta += faint.Render("  " + ticket.Category.Name)
	}
	if ticket.Location != nil {
		meta += faint.Render("  @" + ticket.Location.Name)
	}
	if ticket.AssignedAgent != nil {
		meta += faint.Render("  → " + ticket.AssignedAgent.Name)
	}
	b.WriteString(meta + "\n\n")

	body := renderMarkdown(ticket.Description, theme, contentWidth)
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText).
		Render(fmt.Sprintf("Comments (%d)", len(ticket.Comments))) + "\n")
	for _, comment := range ticket.Comments {
		b.WriteString(model.renderComment(comment, contentWidth))
	}

	if model.composing {
		b.WriteString("\n  " + model.commentInput.View() + "\n")
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render("Enter send · Esc cancel"))
	} else {
		help := "c comment · S status · a assign · r refresh · Esc back · q quit"
		switch model.currentRole() {
		case api.RoleCustomer:
			help = "c comment · r refresh · Esc back · q quit"
		case api.RoleAgent:
			help = "c comment · S status · r refresh · Esc back · q quit"
		}
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render(help))
	}

	return model.clipDetail(b.String())
}

// renderComment renders one comment with author, relative position in
// the thread, and an in-flight marker for optimistic placeholders.
func (model *Model) renderComment(comment api.Comment, width int) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	author := "unknown"
	if comment.Author != nil {
		author = comment.Author.Name
	}
	header := "  " + faint.Render("— "+author)
	if !comment.CreatedAt.IsZero() {
		header += faint.Render(" · " + comment.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if comment.ID < 0 {
		// Optimistic placeholder still in flight.
		header += " " + model.spin.View()
	}

	var b strings.Builder
	b.WriteString(header + "\n")
	for _, line := range strings.Split(renderMarkdown(comment.Content, theme, width-2), "\n") {
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}

// clipDetail applies vertical scrolling to the rendered detail view
// with a scrollbar on the right edge.
func (model *Model) clipDetail(view string) string {
	if model.height <= 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	visible := model.height - 2 // Header and status bar.
	if visible < 5 {
		visible = 5
	}
	if len(lines) <= visible {
		model.detailOffset = 0
		return view
	}

	maxOffset := len(lines) - visible
	if model.detailOffset > maxOffset {
		model.detailOffset = maxOffset
	}
	clipped := lines[model.detailOffset : model.detailOffset+visible]

	scrollbar := tui.RenderScrollbar(model.theme, visible, len(lines), visible, model.detailOffset, true)
	scrollbarLines := strings.Split(scrollbar, "\n")

	var b strings.Builder
	for index, line := range clipped {
		b.WriteString(line)
		if index < len(scrollbarLines) {
			b.WriteString(" " + scrollbarLines[index])
		}
		if index < len(clipped)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
