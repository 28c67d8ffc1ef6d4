// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/KhalidiZib/supporthub/lib/tui"
)

// The goldmark parser is initialized once and shared. Its configuration
// never changes, and the parser itself is safe to share; per-call state
// lives in the reader passed to Parse.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParser
}

// renderMarkdown parses a ticket description or comment body as
// markdown and renders it as styled terminal output. Soft line breaks
// (single newlines within paragraphs) become spaces so hard-wrapped
// source text reflows correctly at any terminal width. Code blocks,
// lists, and blockquotes preserve their structure.
func renderMarkdown(input string, theme tui.Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: this output is always for terminal
	// display inside the bubbletea program, so auto-detection (which
	// yields uncolored output without a TTY, as in tests) is bypassed.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	walker := &markdownWalker{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, walker.walk)

	return strings.TrimRight(walker.output.String(), "\n")
}

// markdownWalker walks a goldmark AST and produces styled terminal
// text. A direct ast.Walk is used instead of goldmark's renderer
// interface because terminal rendering needs accumulate-then-wrap
// semantics: paragraph inline content collects in a buffer and gets
// word-wrapped as a unit when the paragraph closes.
type markdownWalker struct {
	source []byte
	theme  tui.Theme
	width  int

	output strings.Builder

	// Inline accumulator, flushed with word-wrap when the containing
	// block closes.
	inline strings.Builder

	// Prefix stack for nested containers (blockquotes, lists).
	prefixStack     []string
	linePrefix      string
	linePrefixWidth int

	// Pending bullet: replaces linePrefix for the very next emitted
	// line, then clears.
	pendingBullet string

	// Inline style counters. Counters rather than booleans so nested
	// emphasis closes correctly.
	boldCount          int
	italicCount        int
	strikethroughCount int

	listStack []listState

	lipRenderer *lipgloss.Renderer

	trailingNewlines int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (walker *markdownWalker) newStyle() lipgloss.Style {
	return walker.lipRenderer.NewStyle()
}

// currentWidth returns the available content width after nesting
// prefixes, clamped to a minimum of 10 to prevent degenerate wrapping.
func (walker *markdownWalker) currentWidth() int {
	width := walker.width - walker.linePrefixWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (walker *markdownWalker) pushPrefix(prefix string, visibleWidth int) {
	walker.prefixStack = append(walker.prefixStack, prefix)
	walker.linePrefix += prefix
	walker.linePrefixWidth += visibleWidth
}

func (walker *markdownWalker) popPrefix() {
	if len(walker.prefixStack) == 0 {
		return
	}
	top := walker.prefixStack[len(walker.prefixStack)-1]
	walker.prefixStack = walker.prefixStack[:len(walker.prefixStack)-1]
	walker.linePrefix = walker.linePrefix[:len(walker.linePrefix)-len(top)]
	walker.linePrefixWidth -= ansi.StringWidth(top)
}

func (walker *markdownWalker) inTightList() bool {
	if len(walker.listStack) == 0 {
		return false
	}
	return walker.listStack[len(walker.listStack)-1].tight
}

// writeOutput appends text to the output buffer, tracking trailing
// newlines for blank line management.
func (walker *markdownWalker) writeOutput(s string) {
	if s == "" {
		return
	}
	walker.output.WriteString(s)

	newTrailing := 0
	entirelyNewlines := true
	for index := len(s) - 1; index >= 0; index-- {
		if s[index] == '\n' {
			newTrailing++
		} else {
			entirelyNewlines = false
			break
		}
	}
	if entirelyNewlines {
		walker.trailingNewlines += newTrailing
	} else {
		walker.trailingNewlines = newTrailing
	}
}

func (walker *markdownWalker) ensureNewline() {
	if walker.trailingNewlines < 1 {
		walker.writeOutput("\n")
	}
}

func (walker *markdownWalker) ensureBlankLine() {
	for walker.trailingNewlines < 2 {
		walker.writeOutput("\n")
	}
}

// consumeLinePrefix returns the prefix for the current line: the
// pending bullet for the first line of a list item, otherwise the
// regular line prefix.
func (walker *markdownWalker) consumeLinePrefix() string {
	if walker.pendingBullet != "" {
		bullet := walker.pendingBullet
		walker.pendingBullet = ""
		return bullet
	}
	return walker.linePrefix
}

func (walker *markdownWalker) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	var result strings.Builder
	for index, line := range lines {
		if index == 0 {
			result.WriteString(walker.consumeLinePrefix())
		} else {
			result.WriteString(walker.linePrefix)
		}
		result.WriteString(line)
		if index < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// flushInline word-wraps the accumulated inline content to the current
// width, applies line prefixes, and resets the inline buffer.
func (walker *markdownWalker) flushInline() string {
	content := walker.inline.String()
	walker.inline.Reset()
	if content == "" {
		return ""
	}
	content = ansi.Wrap(content, walker.currentWidth(), " ,.;-+|")
	return walker.applyPrefixes(content)
}

func (walker *markdownWalker) styledText(content string) string {
	style := walker.newStyle().Foreground(walker.theme.NormalText)
	if walker.boldCount > 0 {
		style = style.Bold(true)
	}
	if walker.italicCount > 0 {
		style = style.Italic(true)
	}
	if walker.strikethroughCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// renderInlineContent collects a node's children into a string,
// saving and restoring the inline buffer and style state.
func (walker *markdownWalker) renderInlineContent(node ast.Node) string {
	savedInline := walker.inline.String()
	savedBold := walker.boldCount
	savedItalic := walker.italicCount
	savedStrikethrough := walker.strikethroughCount

	walker.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, walker.walk)
	}
	result := walker.inline.String()

	walker.inline.Reset()
	walker.inline.WriteString(savedInline)
	walker.boldCount = savedBold
	walker.italicCount = savedItalic
	walker.strikethroughCount = savedStrikethrough

	return result
}

// highlightCode uses Chroma for syntax highlighting, falling back to
// FaintText-styled plain text for unknown languages.
func (walker *markdownWalker) highlightCode(code, language string) string {
	if language == "" {
		return walker.newStyle().Foreground(walker.theme.FaintText).Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return walker.newStyle().Foreground(walker.theme.FaintText).Render(code)
	}
	return buffer.String()
}

func (walker *markdownWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			walker.inline.Reset()
		} else {
			flushed := walker.flushInline()
			if flushed != "" {
				walker.writeOutput(flushed)
				walker.ensureNewline()
				if !walker.inTightList() {
					walker.ensureBlankLine()
				}
			}
		}

	case ast.KindHeading:
		if entering {
			walker.inline.Reset()
		} else {
			walker.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			walker.renderFencedCodeBlock(node.(*ast.FencedCodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			walker.renderCodeBlock(node.(*ast.CodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			walker.pushPrefix("│ ", 2)
		} else {
			walker.popPrefix()
			walker.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			start := 0
			if list.IsOrdered() {
				start = list.Start
			}
			walker.listStack = append(walker.listStack, listState{
				ordered: list.IsOrdered(),
				counter: start,
				tight:   list.IsTight,
			})
		} else {
			if len(walker.listStack) > 0 {
				walker.listStack = walker.listStack[:len(walker.listStack)-1]
			}
			if !walker.inTightList() {
				walker.ensureBlankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			walker.enterListItem()
		} else {
			walker.popPrefix()
			if !walker.inTightList() {
				walker.ensureBlankLine()
			} else {
				walker.ensureNewline()
			}
		}

	case ast.KindThematicBreak:
		if entering {
			rule := strings.Repeat("─", walker.currentWidth())
			ruleStyle := walker.newStyle().Foreground(walker.theme.BorderColor)
			walker.ensureBlankLine()
			walker.writeOutput(walker.applyPrefixes(ruleStyle.Render(rule)))
			walker.ensureNewline()
			walker.ensureBlankLine()
		}

	case ast.KindText:
		if entering {
			walker.handleText(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			str := node.(*ast.String)
			walker.inline.WriteString(walker.styledText(string(str.Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			walker.boldCount += delta
		} else {
			walker.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			walker.renderCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			walker.renderLink(node.(*ast.Link))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(walker.source))
			urlStyle := walker.newStyle().Foreground(walker.theme.LinkForeground)
			walker.inline.WriteString(urlStyle.Render(url))
		}

	case extast.KindStrikethrough:
		if entering {
			walker.strikethroughCount++
		} else {
			walker.strikethroughCount--
		}

	case extast.KindTaskCheckBox:
		if entering {
			checkbox := node.(*extast.TaskCheckBox)
			if checkbox.IsChecked {
				checkStyle := walker.newStyle().Foreground(walker.theme.StatusClosed)
				walker.inline.WriteString(checkStyle.Render("[x]") + " ")
			} else {
				walker.inline.WriteString(walker.styledText("[ ] "))
			}
		}
	}

	return ast.WalkContinue, nil
}

func (walker *markdownWalker) leaveHeading(heading *ast.Heading) {
	// Strip accumulated inline styling: the heading's own style
	// replaces it.
	content := ansi.Strip(walker.inline.String())
	walker.inline.Reset()
	if content == "" {
		return
	}

	style := walker.newStyle().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(walker.theme.HeaderForeground)
	} else {
		style = style.Foreground(walker.theme.NormalText)
	}

	wrapped := ansi.Wrap(style.Render(content), walker.currentWidth(), " ,.;-+|")
	walker.ensureBlankLine()
	walker.writeOutput(walker.applyPrefixes(wrapped))
	walker.ensureNewline()
	walker.ensureBlankLine()
}

func (walker *markdownWalker) renderFencedCodeBlock(node *ast.FencedCodeBlock) {
	language := string(node.Language(walker.source))
	walker.writeCodeLines(walker.highlightCode(walker.collectLines(node.Lines()), language))
}

func (walker *markdownWalker) renderCodeBlock(node *ast.CodeBlock) {
	faint := walker.newStyle().Foreground(walker.theme.FaintText)
	code := walker.collectLines(node.Lines())
	var styled []string
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		styled = append(styled, faint.Render(line))
	}
	walker.writeCodeLines(strings.Join(styled, "\n"))
}

func (walker *markdownWalker) collectLines(lines *text.Segments) string {
	var code strings.Builder
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(walker.source))
	}
	return code.String()
}

func (walker *markdownWalker) writeCodeLines(rendered string) {
	walker.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		walker.writeOutput(walker.consumeLinePrefix() + line)
		walker.ensureNewline()
	}
	walker.ensureBlankLine()
}

func (walker *markdownWalker) enterListItem() {
	if len(walker.listStack) == 0 {
		return
	}
	top := &walker.listStack[len(walker.listStack)-1]

	var bullet string
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	} else {
		bullet = "- "
	}

	bulletWidth := len(bullet) // ASCII-only, byte length == visual width.
	continuation := strings.Repeat(" ", bulletWidth)

	// The pending bullet includes the current linePrefix so it
	// replaces the entire prefix for the first line of this item.
	walker.pendingBullet = walker.linePrefix + bullet
	walker.pushPrefix(continuation, bulletWidth)
}

func (walker *markdownWalker) handleText(node *ast.Text) {
	value := string(node.Segment.Value(walker.source))
	walker.inline.WriteString(walker.styledText(value))

	if node.SoftLineBreak() {
		// Soft line breaks become spaces so hard-wrapped source text
		// reflows at the current terminal width.
		walker.inline.WriteString(" ")
	}
	if node.HardLineBreak() {
		walker.inline.WriteString("\n")
	}
}

func (walker *markdownWalker) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			code.Write(typed.Segment.Value(walker.source))
		case *ast.String:
			code.Write(typed.Value)
		}
	}
	codeStyle := walker.newStyle().Foreground(walker.theme.FaintText)
	walker.inline.WriteString(codeStyle.Render(code.String()))
}

func (walker *markdownWalker) renderLink(node *ast.Link) {
	displayText := walker.renderInlineContent(node)
	url := string(node.Destination)

	walker.inline.WriteString(displayText)
	if url != "" {
		urlStyle := walker.newStyle().Foreground(walker.theme.LinkForeground)
		walker.inline.WriteString(" " + urlStyle.Render("("+url+")"))
	}
}
