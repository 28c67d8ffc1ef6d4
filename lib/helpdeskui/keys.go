// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the help desk viewer.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or detail
	// scrolling depending on the current screen).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// List pagination (server-side pages, not cursor movement).
	NextPage key.Binding
	PrevPage key.Binding

	// Screens.
	Open   key.Binding // Open the selected ticket.
	Back   key.Binding // Return to the list.
	Create key.Binding // Open the new-ticket form.

	// Filters.
	FilterStatus   key.Binding
	FilterPriority key.Binding
	FilterClear    key.Binding

	// Mutations.
	Status  key.Binding // Open the status dropdown (detail).
	Assign  key.Binding // Open the agent dropdown (detail, admin only).
	Comment key.Binding // Focus the comment composer (detail).

	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "scroll down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "left"),
		key.WithHelp("p/←", "prev page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("Esc", "back"),
	),
	Create: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new ticket"),
	),
	FilterStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	FilterPriority: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "priority filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear filters"),
	),
	Status: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "set status"),
	),
	Assign: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "assign"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comment"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
