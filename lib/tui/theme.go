// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/KhalidiZib/supporthub/lib/api"
)

// Theme defines the color palette and visual properties for the
// SupportHub terminal UI. All colors use lipgloss ANSI 256-color codes
// for broad terminal compatibility.
//
// The fields cover both universal chrome (text, selection, borders)
// and the semantic categories that recur across screens: ticket
// statuses, priorities, and the unread-notification badge.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Priority colors (indexed 0-3: low, medium, high, urgent).
	PriorityColors [4]lipgloss.Color

	// Status colors.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color
	StatusClosed     lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Form and flow feedback.
	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color

	// UnreadBadge colors the unread-notification counter.
	UnreadBadge lipgloss.Color

	// LinkForeground colors inline references (ticket IDs, URLs).
	LinkForeground lipgloss.Color

	// Floating overlays (dropdowns).
	TooltipForeground lipgloss.Color
	TooltipBackground lipgloss.Color
}

// PriorityColor returns the color for a ticket priority. Unknown
// values return NormalText.
func (theme Theme) PriorityColor(priority api.Priority) lipgloss.Color {
	switch priority {
	case api.PriorityLow:
		return theme.PriorityColors[0]
	case api.PriorityMedium:
		return theme.PriorityColors[1]
	case api.PriorityHigh:
		return theme.PriorityColors[2]
	case api.PriorityUrgent:
		return theme.PriorityColors[3]
	default:
		return theme.NormalText
	}
}

// StatusColor returns the color for a ticket status. Unknown values
// return FaintText.
func (theme Theme) StatusColor(status api.TicketStatus) lipgloss.Color {
	switch status {
	case api.StatusOpen:
		return theme.StatusOpen
	case api.StatusInProgress:
		return theme.StatusInProgress
	case api.StatusResolved:
		return theme.StatusResolved
	case api.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityColors: [4]lipgloss.Color{
		lipgloss.Color("245"), // low: gray
		lipgloss.Color("75"),  // medium: blue
		lipgloss.Color("208"), // high: orange
		lipgloss.Color("196"), // urgent: bright red
	},

	StatusOpen:       lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // yellow/amber
	StatusResolved:   lipgloss.Color("75"),  // blue
	StatusClosed:     lipgloss.Color("245"), // gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:   lipgloss.Color("196"),
	SuccessText: lipgloss.Color("114"),

	UnreadBadge: lipgloss.Color("208"), // orange, visible but not alarming

	LinkForeground: lipgloss.Color("75"),

	TooltipForeground: lipgloss.Color("252"),
	TooltipBackground: lipgloss.Color("237"),
}
