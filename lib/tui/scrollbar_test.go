// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func scrollbarRunes(t *testing.T, rendered string) []string {
	t.Helper()
	var runes []string
	for _, line := range strings.Split(rendered, "\n") {
		runes = append(runes, ansi.Strip(line))
	}
	return runes
}

func TestRenderScrollbar(t *testing.T) {
	t.Run("zero height renders nothing", func(t *testing.T) {
		if got := RenderScrollbar(DefaultTheme, 0, 100, 10, 0, true); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("content fits gives a full-height thumb", func(t *testing.T) {
		lines := scrollbarRunes(t, RenderScrollbar(DefaultTheme, 6, 4, 10, 0, false))
		if len(lines) != 6 {
			t.Fatalf("rendered %d lines, want 6", len(lines))
		}
		for index, line := range lines {
			if line != "┃" {
				t.Errorf("line %d = %q, want thumb on every row", index, line)
			}
		}
	})

	t.Run("thumb at top when unscrolled", func(t *testing.T) {
		lines := scrollbarRunes(t, RenderScrollbar(DefaultTheme, 10, 100, 20, 0, true))
		if lines[0] != "┃" {
			t.Errorf("first row = %q, want thumb", lines[0])
		}
		if lines[len(lines)-1] != "│" {
			t.Errorf("last row = %q, want track", lines[len(lines)-1])
		}
	})

	t.Run("thumb at bottom when fully scrolled", func(t *testing.T) {
		lines := scrollbarRunes(t, RenderScrollbar(DefaultTheme, 10, 100, 20, 80, true))
		if lines[len(lines)-1] != "┃" {
			t.Errorf("last row = %q, want thumb", lines[len(lines)-1])
		}
		if lines[0] != "│" {
			t.Errorf("first row = %q, want track", lines[0])
		}
	})

	t.Run("thumb never smaller than one row", func(t *testing.T) {
		lines := scrollbarRunes(t, RenderScrollbar(DefaultTheme, 4, 10000, 5, 0, false))
		thumbs := 0
		for _, line := range lines {
			if line == "┃" {
				thumbs++
			}
		}
		if thumbs != 1 {
			t.Errorf("thumb rows = %d, want exactly 1", thumbs)
		}
	})
}
