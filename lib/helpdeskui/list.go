// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/tui"
)

// Dropdown field names. The dropdown overlay is shared between filter
// selection on the list screen and mutations on the detail screen;
// Field tells the close handler what the selection means.
const (
	fieldFilterStatus   = "filter-status"
	fieldFilterPriority = "filter-priority"
	fieldStatus         = "status"
	fieldAgent          = "agent"
	fieldCategory       = "category"
	fieldFormPriority   = "form-priority"
)

// updateList handles keyboard input on the ticket list.
func (model *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	items := model.tickets.Items()

	switch {
	case key.Matches(msg, keys.Quit):
		return model, tea.Quit

	case key.Matches(msg, keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
		return model, nil

	case key.Matches(msg, keys.Down):
		if model.cursor < len(items)-1 {
			model.cursor++
		}
		return model, nil

	case key.Matches(msg, keys.Open):
		if model.cursor < len(items) {
			model.detailLoading = true
			return model, model.fetchTicket(items[model.cursor].ID)
		}
		return model, nil

	case key.Matches(msg, keys.NextPage):
		if model.tickets.Page()+1 < model.tickets.TotalPages() {
			return model, model.fetchTickets(model.tickets.SetPage(model.tickets.Page() + 1))
		}
		return model, nil

	case key.Matches(msg, keys.PrevPage):
		if model.tickets.Page() > 0 {
			return model, model.fetchTickets(model.tickets.SetPage(model.tickets.Page() - 1))
		}
		return model, nil

	case key.Matches(msg, keys.Refresh):
		return model, model.fetchTickets(model.tickets.Reload())

	case key.Matches(msg, keys.FilterStatus):
		model.dropdown = statusDropdown(fieldFilterStatus, 0, true)
		return model, nil

	case key.Matches(msg, keys.FilterPriority):
		model.dropdown = priorityDropdown(fieldFilterPriority, true)
		return model, nil

	case key.Matches(msg, keys.FilterClear):
		return model, model.fetchTickets(model.tickets.SetFilters(api.TicketFilters{}))

	case key.Matches(msg, keys.Create):
		if model.allowed(api.RoleCustomer) {
			model.screen = screenCreate
			model.form = newCreateForm()
			model.form.titleInput.Focus()
			return model, tea.Batch(model.fetchCategories(), model.fetchTopLevelLocations())
		}
		return model, nil
	}

	return model, nil
}

// updateDropdown routes input to the open dropdown overlay.
func (model *Model) updateDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dropdown := model.dropdown
	switch msg.String() {
	case "esc":
		model.dropdown = nil
		return model, nil
	case "up", "k":
		dropdown.MoveUp()
		return model, nil
	case "down", "j":
		dropdown.MoveDown()
		return model, nil
	case "enter":
		selected := dropdown.Selected()
		model.dropdown = nil
		return model.applyDropdownSelection(dropdown.Field, dropdown.ItemID, selected)
	}
	return model, nil
}

// applyDropdownSelection dispatches a closed dropdown's choice.
func (model *Model) applyDropdownSelection(field string, itemID int64, option tui.DropdownOption) (tea.Model, tea.Cmd) {
	switch field {
	case fieldFilterStatus:
		filters := model.tickets.Filters()
		filters.Status = api.TicketStatus(option.Value)
		return model, model.fetchTickets(model.tickets.SetFilters(filters))

	case fieldFilterPriority:
		filters := model.tickets.Filters()
		filters.Priority = api.Priority(option.Value)
		return model, model.fetchTickets(model.tickets.SetFilters(filters))

	case fieldStatus:
		return model, model.changeStatus(itemID, api.TicketStatus(option.Value))

	case fieldAgent:
		agentID, err := strconv.ParseInt(option.Value, 10, 64)
		if err != nil {
			return model, nil
		}
		return model, model.assignAgent(itemID, agentID)
	}
	return model.applyFormDropdown(field, option)
}

// statusDropdown builds a status dropdown. Filter dropdowns include an
// "any" entry that clears the filter.
func statusDropdown(field string, ticketID int64, includeAny bool) *tui.DropdownOverlay {
	var options []tui.DropdownOption
	if includeAny {
		options = append(options, tui.DropdownOption{Label: "any", Value: ""})
	}
	for _, status := range api.TicketStatuses {
		options = append(options, tui.DropdownOption{Label: string(status), Value: string(status)})
	}
	return &tui.DropdownOverlay{
		Options: options,
		Field:   field,
		ItemID:  ticketID,
		AnchorX: 2,
		AnchorY: 2,
	}
}

func priorityDropdown(field string, includeAny bool) *tui.DropdownOverlay {
	var options []tui.DropdownOption
	if includeAny {
		options = append(options, tui.DropdownOption{Label: "any", Value: ""})
	}
	for _, priority := range api.Priorities {
		options = append(options, tui.DropdownOption{Label: string(priority), Value: string(priority)})
	}
	return &tui.DropdownOverlay{
		Options: options,
		Field:   field,
		AnchorX: 2,
		AnchorY: 2,
	}
}

func agentDropdown(agents []api.User, ticketID int64) *tui.DropdownOverlay {
	var options []tui.DropdownOption
	for _, agent := range agents {
		options = append(options, tui.DropdownOption{
			Label: agent.Name,
			Value: strconv.FormatInt(agent.ID, 10),
		})
	}
	return &tui.DropdownOverlay{
		Options: options,
		Field:   fieldAgent,
		ItemID:  ticketID,
		AnchorX: 2,
		AnchorY: 2,
	}
}

// viewList renders the ticket list with one row per ticket.
func (model *Model) viewList() string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	items := model.tickets.Items()

	var b strings.Builder
	b.WriteString("\n")

	title := "Tickets"
	switch model.currentRole() {
	case api.RoleAgent:
		title = "Assigned tickets"
	case api.RoleCustomer:
		title = "My tickets"
	}
	b.WriteString("  " + lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(title))
	b.WriteString(faint.Render(model.filterSummary()) + "\n\n")

	if model.tickets.Loading() {
		b.WriteString("  " + model.spin.View() + faint.Render(" loading") + "\n")
	}

	if len(items) == 0 && !model.tickets.Loading() {
		// An empty result set is a defined state, not an error.
		b.WriteString(faint.Render("  no tickets match") + "\n")
	}

	width := model.width
	if width <= 0 {
		width = 100
	}
	for index, ticket := range items {
		b.WriteString(model.renderTicketRow(ticket, index == model.cursor, width) + "\n")
	}

	if model.tickets.TotalPages() > 1 {
		b.WriteString(faint.Render(fmt.Sprintf("\n  page %d/%d · %d tickets",
			model.tickets.Page()+1, model.tickets.TotalPages(), model.tickets.TotalElements())) + "\n")
	}

	help := "Enter open · s/P filter · x clear · n/p page · r refresh · q quit"
	if model.currentRole() == api.RoleCustomer {
		help = "Enter open · N new ticket · s/P filter · x clear · n/p page · r refresh · q quit"
	}
	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render(help))
	return b.String()
}

// renderTicketRow renders one list row: id, status, priority, title.
func (model *Model) renderTicketRow(ticket api.Ticket, selected bool, width int) string {
	theme := model.theme

	statusStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(ticket.Status))
	priorityStyle := lipgloss.NewStyle().Foreground(theme.PriorityColor(ticket.Priority))

	id := fmt.Sprintf("#%-5d", ticket.ID)
	status := statusStyle.Render(fmt.Sprintf("%-11s", ticket.Status))
	priority := priorityStyle.Render(fmt.Sprintf("%-6s", ticket.Priority))

	titleWidth := width - 30
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := ticket.Title
	if ansi.StringWidth(title) > titleWidth {
		title = ansi.Truncate(title, titleWidth-1, "…")
	}

	row := fmt.Sprintf("  %s %s %s %s", id, status, priority, title)
	if selected {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Render(row)
	}
	return row
}

// filterSummary describes the active server-side filters for the list
// header.
func (model *Model) filterSummary() string {
	filters := model.tickets.Filters()
	var parts []string
	if filters.Status != "" {
		parts = append(parts, "status="+string(filters.Status))
	}
	if filters.Priority != "" {
		parts = append(parts, "priority="+string(filters.Priority))
	}
	if filters.Search != "" {
		parts = append(parts, "search="+filters.Search)
	}
	if len(parts) == 0 {
		return ""
	}
	return "  [" + strings.Join(parts, " ") + "]"
}
