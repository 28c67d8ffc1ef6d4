// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/KhalidiZib/supporthub/lib/tui"
)

// stripped renders markdown and returns ANSI-stripped visible text.
func stripped(input string, width int) string {
	return ansi.Strip(renderMarkdown(input, tui.DefaultTheme, width))
}

// raw renders markdown and returns the raw ANSI-styled output.
func raw(input string, width int) string {
	return renderMarkdown(input, tui.DefaultTheme, width)
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if result := renderMarkdown("", tui.DefaultTheme, 80); result != "" {
		t.Errorf("expected empty output for empty input, got %q", result)
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	// Source text hard-wrapped at a narrow width; soft breaks must
	// become spaces at a wide render width.
	input := "This ticket description was\nwritten at a narrow width with\nhard line breaks embedded in it."
	result := stripped(input, 120)

	if strings.Contains(result, "\n") {
		t.Errorf("expected single line at width=120, got:\n%s", result)
	}
	if !strings.Contains(result, "was written at") {
		t.Errorf("expected soft break converted to space, got:\n%s", result)
	}
}

func TestRenderMarkdownParagraphWrapNarrow(t *testing.T) {
	input := "This description should be wrapped at the requested render width."
	result := stripped(input, 30)

	for _, line := range strings.Split(result, "\n") {
		if ansi.StringWidth(line) > 30 {
			t.Errorf("line exceeds width 30: %q", line)
		}
	}
}

func TestRenderMarkdownHeading(t *testing.T) {
	input := "# Summary\n\nBody text."
	result := stripped(input, 80)

	if !strings.Contains(result, "Summary") {
		t.Errorf("missing heading text, got:\n%s", result)
	}
	if raw(input, 80) == result {
		t.Error("expected ANSI styling in heading output")
	}
}

func TestRenderMarkdownEmphasis(t *testing.T) {
	input := "The server is *slow* and **unreachable** right now."
	result := stripped(input, 80)

	if !strings.Contains(result, "slow") || !strings.Contains(result, "unreachable") {
		t.Errorf("missing emphasized text, got:\n%s", result)
	}
	if raw(input, 80) == result {
		t.Error("expected ANSI styling in emphasis output")
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	input := "Error output:\n\n```\nconnection refused\n```\n"
	result := stripped(input, 80)

	if !strings.Contains(result, "connection refused") {
		t.Errorf("missing code block content, got:\n%s", result)
	}
}

func TestRenderMarkdownFencedCodeNotReflowed(t *testing.T) {
	// Code lines keep their breaks even when they would fit on one
	// reflowed line.
	input := "```\nfirst\nsecond\n```"
	result := stripped(input, 120)

	if !strings.Contains(result, "first") || !strings.Contains(result, "second") {
		t.Fatalf("missing code lines, got:\n%s", result)
	}
	if strings.Contains(result, "first second") {
		t.Errorf("code lines were joined, got:\n%s", result)
	}
}

func TestRenderMarkdownBulletList(t *testing.T) {
	input := "- printer jams\n- paper missing\n- toner low"
	result := stripped(input, 80)

	for _, item := range []string{"printer jams", "paper missing", "toner low"} {
		if !strings.Contains(result, item) {
			t.Errorf("missing list item %q, got:\n%s", item, result)
		}
	}
	if strings.Count(result, "- ") != 3 {
		t.Errorf("expected 3 bullets, got:\n%s", result)
	}
}

func TestRenderMarkdownOrderedList(t *testing.T) {
	input := "1. unplug it\n2. wait ten seconds\n3. plug it back in"
	result := stripped(input, 80)

	if !strings.Contains(result, "1.") || !strings.Contains(result, "3.") {
		t.Errorf("expected ordered markers, got:\n%s", result)
	}
}

func TestRenderMarkdownBlockquote(t *testing.T) {
	input := "> the user reports it worked yesterday"
	result := stripped(input, 80)

	if !strings.Contains(result, "│") {
		t.Errorf("expected blockquote prefix, got:\n%s", result)
	}
	if !strings.Contains(result, "worked yesterday") {
		t.Errorf("missing quoted text, got:\n%s", result)
	}
}

func TestRenderMarkdownLink(t *testing.T) {
	input := "See [the runbook](https://wiki.example.com/runbook)."
	result := stripped(input, 200)

	if !strings.Contains(result, "the runbook") {
		t.Errorf("missing link text, got:\n%s", result)
	}
	if !strings.Contains(result, "https://wiki.example.com/runbook") {
		t.Errorf("missing link target, got:\n%s", result)
	}
}

func TestRenderMarkdownStrikethrough(t *testing.T) {
	input := "~~obsolete step~~ use the new portal"
	result := stripped(input, 80)

	if !strings.Contains(result, "obsolete step") {
		t.Errorf("missing struck text, got:\n%s", result)
	}
}

func TestRenderMarkdownThematicBreak(t *testing.T) {
	input := "before\n\n---\n\nafter"
	result := stripped(input, 40)

	if !strings.Contains(result, "─") {
		t.Errorf("expected horizontal rule, got:\n%s", result)
	}
}
