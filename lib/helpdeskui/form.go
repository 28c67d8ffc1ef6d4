// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/cascade"
	"github.com/KhalidiZib/supporthub/lib/tui"
)

// Form focus slots, cycled with tab. Text fields come first, then the
// dropdown-backed fields, then the submit action.
const (
	focusTitle = iota
	focusDescription
	focusCategory
	focusPriority
	focusLocationFirst // Five consecutive slots, one per cascade level.
	focusSubmit        = focusLocationFirst + cascade.Levels
)

// createForm is the new-ticket form state. Only customers reach it;
// the location must cascade down to a village before submission.
type createForm struct {
	titleInput       textinput.Model
	descriptionInput textinput.Model

	categories   []api.Category
	categoryID   int64
	categoryName string

	priority api.Priority

	selector *cascade.Selector

	focus      int
	submitting bool
	errText    string
}

func newCreateForm() createForm {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200

	description := textinput.New()
	description.Placeholder = "describe the problem"
	description.CharLimit = 4000

	return createForm{
		titleInput:       title,
		descriptionInput: description,
		priority:         api.PriorityMedium,
		selector:         cascade.NewSelector(),
	}
}

// updateCreate handles keyboard input on the new-ticket form.
func (model *Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &model.form

	switch msg.String() {
	case "ctrl+c":
		return model, tea.Quit

	case "esc":
		model.screen = screenList
		return model, nil

	case "tab", "down":
		model.setFormFocus(form.focus + 1)
		return model, nil

	case "shift+tab", "up":
		model.setFormFocus(form.focus - 1)
		return model, nil

	case "enter":
		return model.activateFormField()
	}

	var command tea.Cmd
	switch form.focus {
	case focusTitle:
		form.titleInput, command = form.titleInput.Update(msg)
	case focusDescription:
		form.descriptionInput, command = form.descriptionInput.Update(msg)
	}
	return model, command
}

// setFormFocus moves focus, skipping location levels whose parent has
// no selection yet.
func (model *Model) setFormFocus(target int) {
	form := &model.form
	if target < focusTitle {
		target = focusTitle
	}
	if target > focusSubmit {
		target = focusSubmit
	}

	// Skip disabled cascade levels in the direction of travel.
	if target >= focusLocationFirst && target < focusSubmit {
		level := target - focusLocationFirst
		if !form.selector.Enabled(level) {
			if target > form.focus {
				target = focusSubmit
			} else {
				target = focusLocationFirst - 1
			}
		}
	}

	form.focus = target
	if target == focusTitle {
		form.titleInput.Focus()
	} else {
		form.titleInput.Blur()
	}
	if target == focusDescription {
		form.descriptionInput.Focus()
	} else {
		form.descriptionInput.Blur()
	}
}

// activateFormField handles enter on the focused field: dropdowns
// open, submit validates and sends.
func (model *Model) activateFormField() (tea.Model, tea.Cmd) {
	form := &model.form

	switch {
	case form.focus == focusCategory:
		if len(form.categories) == 0 {
			return model, nil
		}
		var options []tui.DropdownOption
		for _, category := range form.categories {
			options = append(options, tui.DropdownOption{
				Label: category.Name,
				Value: strconv.FormatInt(category.ID, 10),
			})
		}
		model.dropdown = &tui.DropdownOverlay{
			Options: options,
			Field:   fieldCategory,
			AnchorX: 2,
			AnchorY: 4,
		}
		return model, nil

	case form.focus == focusPriority:
		model.dropdown = priorityDropdown(fieldFormPriority, false)
		return model, nil

	case form.focus >= focusLocationFirst && form.focus < focusSubmit:
		level := form.focus - focusLocationFirst
		options := form.selector.Options(level)
		if len(options) == 0 {
			return model, nil
		}
		var dropdownOptions []tui.DropdownOption
		for _, node := range options {
			dropdownOptions = append(dropdownOptions, tui.DropdownOption{
				Label: node.Name,
				Value: strconv.FormatInt(node.ID, 10),
			})
		}
		model.dropdown = &tui.DropdownOverlay{
			Options: dropdownOptions,
			Field:   fmt.Sprintf("location-%d", level),
			AnchorX: 2,
			AnchorY: 4,
		}
		return model, nil

	case form.focus == focusSubmit:
		return model.submitForm()
	}

	// Enter on a text field advances focus, matching the tab order.
	model.setFormFocus(form.focus + 1)
	return model, nil
}

// applyFormDropdown handles dropdown selections belonging to the form.
func (model *Model) applyFormDropdown(field string, option tui.DropdownOption) (tea.Model, tea.Cmd) {
	form := &model.form

	switch field {
	case fieldCategory:
		id, err := strconv.ParseInt(option.Value, 10, 64)
		if err != nil {
			return model, nil
		}
		form.categoryID = id
		form.categoryName = option.Label
		return model, nil

	case fieldFormPriority:
		form.priority = api.Priority(option.Value)
		return model, nil
	}

	if level, ok := locationLevel(field); ok {
		id, err := strconv.ParseInt(option.Value, 10, 64)
		if err != nil {
			return model, nil
		}
		fetch, needed := form.selector.SelectNode(level, id)
		if needed {
			return model, model.fetchChildLocations(fetch)
		}
		return model, nil
	}
	return model, nil
}

// locationLevel parses a "location-N" dropdown field name.
func locationLevel(field string) (int, bool) {
	const prefix = "location-"
	if !strings.HasPrefix(field, prefix) {
		return 0, false
	}
	level, err := strconv.Atoi(field[len(prefix):])
	if err != nil || level < 0 || level >= cascade.Levels {
		return 0, false
	}
	return level, true
}

// submitForm validates locally and files the ticket. Validation
// failures never reach the network.
func (model *Model) submitForm() (tea.Model, tea.Cmd) {
	form := &model.form

	title := strings.TrimSpace(form.titleInput.Value())
	description := strings.TrimSpace(form.descriptionInput.Value())
	switch {
	case title == "":
		form.errText = "title is required"
		return model, nil
	case description == "":
		form.errText = "description is required"
		return model, nil
	case form.categoryID == 0:
		form.errText = "select a category"
		return model, nil
	}
	if err := form.selector.Validate(); err != nil {
		form.errText = "select a location down to the village"
		return model, nil
	}

	form.errText = ""
	form.submitting = true
	request := api.CreateTicketRequest{
		Title:       title,
		Description: description,
		CategoryID:  form.categoryID,
		LocationID:  form.selector.LocationID(),
		Priority:    form.priority,
	}
	client := model.client
	return model, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ticket, err := client.CreateTicket(ctx, request)
		return createdTicketMsg{ticket: ticket, err: err}
	}
}

// updateForm handles the form's asynchronous results.
func (model *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form := &model.form

	switch msg := msg.(type) {
	case categoriesMsg:
		if msg.err != nil {
			form.errText = "loading categories failed: " + shortError(msg.err)
			return model, nil
		}
		form.categories = msg.categories
		return model, nil

	case locationsMsg:
		if msg.err != nil {
			form.errText = "loading locations failed: " + shortError(msg.err)
			return model, nil
		}
		if msg.fetch.Level == 0 {
			form.selector.SetTopLevel(msg.nodes)
		} else {
			form.selector.SetOptions(msg.fetch, msg.nodes)
		}
		return model, nil

	case createdTicketMsg:
		form.submitting = false
		if msg.err != nil {
			form.errText = "creating ticket failed: " + shortError(msg.err)
			return model, nil
		}
		// Jump straight into the new ticket.
		model.ticket = msg.ticket
		model.screen = screenDetail
		model.detailOffset = 0
		return model, nil
	}
	return model, nil
}

func (model *Model) fetchCategories() tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		categories, err := client.ListCategories(ctx)
		return categoriesMsg{categories: categories, err: err}
	}
}

func (model *Model) fetchTopLevelLocations() tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		nodes, err := client.TopLevelLocations(ctx)
		return locationsMsg{fetch: cascade.ChildFetch{Level: 0}, nodes: nodes, err: err}
	}
}

func (model *Model) fetchChildLocations(fetch cascade.ChildFetch) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		nodes, err := client.LocationsByParent(ctx, fetch.ParentID)
		return locationsMsg{fetch: fetch, nodes: nodes, err: err}
	}
}

// levelLabel renders a cascade level name for the form ("Province",
// "District", ...).
func levelLabel(level int) string {
	name := strings.ToLower(string(cascade.LevelType(level)))
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// viewCreate renders the new-ticket form.
func (model *Model) viewCreate() string {
	theme := model.theme
	form := &model.form
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	focused := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	label := func(slot int, text string) string {
		if form.focus == slot {
			return focused.Render("> " + text)
		}
		return faint.Render("  " + text)
	}

	var b strings.Builder
	b.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("New ticket") + "\n\n")
	b.WriteString("  " + label(focusTitle, "Title") + "        " + form.titleInput.View() + "\n")
	b.WriteString("  " + label(focusDescription, "Description") + "  " + form.descriptionInput.View() + "\n")

	categoryValue := form.categoryName
	if categoryValue == "" {
		categoryValue = "(choose)"
	}
	b.WriteString("  " + label(focusCategory, "Category") + "     " + categoryValue + "\n")

	priorityStyle := lipgloss.NewStyle().Foreground(theme.PriorityColor(form.priority))
	b.WriteString("  " + label(focusPriority, "Priority") + "     " + priorityStyle.Render(string(form.priority)) + "\n")

	for level := 0; level < cascade.Levels; level++ {
		name := levelLabel(level)
		value := "(choose)"
		if node, ok := form.selector.SelectedNode(level); ok {
			value = node.Name
		} else if !form.selector.Enabled(level) {
			value = faint.Render("—")
		}
		b.WriteString("  " + label(focusLocationFirst+level, name) + "     " + value + "\n")
	}

	submitLabel := "Submit"
	if form.submitting {
		submitLabel = "Submitting " + model.spin.View()
	}
	b.WriteString("\n  " + label(focusSubmit, submitLabel) + "\n")

	if form.errText != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(form.errText) + "\n")
	}
	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("Tab next field · Enter choose/submit · Esc cancel"))
	return b.String()
}
