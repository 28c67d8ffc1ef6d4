// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	"github.com/KhalidiZib/supporthub/lib/api"
)

func TestStatusColors(t *testing.T) {
	theme := DefaultTheme

	cases := []struct {
		status api.TicketStatus
		want   string
	}{
		{api.StatusOpen, string(theme.StatusOpen)},
		{api.StatusInProgress, string(theme.StatusInProgress)},
		{api.StatusResolved, string(theme.StatusResolved)},
		{api.StatusClosed, string(theme.StatusClosed)},
		{api.TicketStatus("BOGUS"), string(theme.FaintText)},
	}
	for _, test := range cases {
		if got := string(theme.StatusColor(test.status)); got != test.want {
			t.Errorf("StatusColor(%s) = %s, want %s", test.status, got, test.want)
		}
	}
}

func TestPriorityColors(t *testing.T) {
	theme := DefaultTheme

	// Each priority gets a distinct color, and severity ordering is
	// reflected in the palette indices.
	seen := map[string]api.Priority{}
	for _, priority := range api.Priorities {
		color := string(theme.PriorityColor(priority))
		if other, dup := seen[color]; dup {
			t.Errorf("priority %s shares color %s with %s", priority, color, other)
		}
		seen[color] = priority
	}

	if got := string(theme.PriorityColor(api.Priority("BOGUS"))); got != string(theme.NormalText) {
		t.Errorf("unknown priority color = %s", got)
	}
}
