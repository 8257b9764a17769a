// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package tui

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
	"github.com/yuin/goldmark/text"
)

// markdownParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share — actual parsing creates per-call state via Parse(reader).
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// RenderMarkdown parses markdown text and renders it as styled
// terminal output, word-wrapped to the given width. Soft line breaks
// within paragraphs become spaces so hard-wrapped source reflows at
// any terminal width. Used for the built-in help overlay.
func RenderMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	reader := text.NewReader(source)
	document := getMarkdownParser().Parser().Parse(reader)

	// Force the ANSI256 color profile: this output is always for a
	// bubbletea TUI, so auto-detection (which sees no TTY under tests)
	// would strip all color. SetColorProfile is required because
	// lipgloss.Renderer.ColorProfile() re-detects from the environment
	// unless the profile is set explicitly.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &helpMarkdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)

	return strings.TrimRight(renderer.output.String(), "\n")
}

// helpMarkdownRenderer walks a goldmark AST and produces styled
// terminal text. Paragraph inline content accumulates in a buffer and
// is word-wrapped as a unit when the paragraph closes; goldmark's
// streaming renderer interface doesn't fit that accumulate-then-wrap
// shape.
type helpMarkdownRenderer struct {
	source []byte
	theme  Theme
	width  int

	output strings.Builder
	inline strings.Builder

	boldCount   int
	italicCount int

	// List nesting: indent two columns per level, bullet on the first
	// line of each item.
	listDepth     int
	orderedIndex  []int
	pendingBullet string

	lipRenderer *lipgloss.Renderer
}

func (renderer *helpMarkdownRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

func (renderer *helpMarkdownRenderer) indent() string {
	return strings.Repeat("  ", renderer.listDepth)
}

func (renderer *helpMarkdownRenderer) contentWidth() int {
	width := renderer.width - 2*renderer.listDepth
	if width < 10 {
		width = 10
	}
	return width
}

// flushInline word-wraps the accumulated inline content, applies the
// list indent (with the pending bullet on the first line), and writes
// it to the output.
func (renderer *helpMarkdownRenderer) flushInline() {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return
	}

	wrapped := ansi.Wrap(content, renderer.contentWidth(), " ,.;-+|")
	for index, line := range strings.Split(wrapped, "\n") {
		if index == 0 && renderer.pendingBullet != "" {
			renderer.output.WriteString(renderer.pendingBullet)
			renderer.pendingBullet = ""
		} else {
			renderer.output.WriteString(renderer.indent())
		}
		renderer.output.WriteString(line)
		renderer.output.WriteString("\n")
	}
}

func (renderer *helpMarkdownRenderer) styledText(content string) string {
	style := renderer.newStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	return style.Render(content)
}

// highlightCode syntax-highlights fenced code with Chroma. Unknown
// languages and Chroma errors fall back to faint plain text.
func (renderer *helpMarkdownRenderer) highlightCode(code, language string) string {
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err == nil {
			return buffer.String()
		}
	}
	return renderer.newStyle().Foreground(renderer.theme.FaintText).Render(code)
}

func (renderer *helpMarkdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.flushInline()
			if renderer.listDepth == 0 {
				renderer.output.WriteString("\n")
			}
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
		} else {
			heading := node.(*ast.Heading)
			style := renderer.newStyle().
				Bold(true).
				Foreground(renderer.theme.HeaderForeground)
			content := renderer.inline.String()
			renderer.inline.Reset()
			if heading.Level <= 2 {
				content = strings.ToUpper(ansi.Strip(content))
			} else {
				content = ansi.Strip(content)
			}
			renderer.output.WriteString(style.Render(content))
			renderer.output.WriteString("\n\n")
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			renderer.renderCodeLines(block.Lines(), string(block.Language(renderer.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			renderer.renderCodeLines(node.(*ast.CodeBlock).Lines(), "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		// Rendered as an indented faint block; the help text only
		// uses blockquotes for asides.
		if entering {
			renderer.listDepth++
		} else {
			renderer.listDepth--
			renderer.output.WriteString("\n")
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			start := 0
			if list.IsOrdered() {
				start = list.Start
			}
			renderer.orderedIndex = append(renderer.orderedIndex, start)
			renderer.listDepth++
		} else {
			renderer.orderedIndex = renderer.orderedIndex[:len(renderer.orderedIndex)-1]
			renderer.listDepth--
			if renderer.listDepth == 0 {
				renderer.output.WriteString("\n")
			}
		}

	case ast.KindListItem:
		if entering {
			depth := len(renderer.orderedIndex) - 1
			indent := strings.Repeat("  ", renderer.listDepth-1)
			if renderer.orderedIndex[depth] > 0 {
				renderer.pendingBullet = indent + fmt.Sprintf("%d. ", renderer.orderedIndex[depth])
				renderer.orderedIndex[depth]++
			} else {
				renderer.pendingBullet = indent + "• "
			}
		}

	case ast.KindThematicBreak:
		if entering {
			rule := strings.Repeat("─", renderer.contentWidth())
			renderer.output.WriteString(renderer.newStyle().
				Foreground(renderer.theme.BorderColor).
				Render(rule))
			renderer.output.WriteString("\n\n")
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styledText(string(textNode.Segment.Value(renderer.source))))
			if textNode.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			} else if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			renderer.boldCount += delta
		} else {
			renderer.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(renderer.source))
				}
			}
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.Bookmark).
				Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		// Help text links render as their label; there is nothing to
		// click in the terminal.

	case ast.KindAutoLink:
		if entering {
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.FaintText).
				Render(string(node.(*ast.AutoLink).URL(renderer.source))))
		}
	}

	return ast.WalkContinue, nil
}

// renderCodeLines emits a code block: each source line highlighted and
// indented two columns past the current indent.
func (renderer *helpMarkdownRenderer) renderCodeLines(lines *text.Segments, language string) {
	var code strings.Builder
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(renderer.source))
	}

	highlighted := strings.TrimRight(renderer.highlightCode(code.String(), language), "\n")
	for _, line := range strings.Split(highlighted, "\n") {
		renderer.output.WriteString(renderer.indent())
		renderer.output.WriteString("  ")
		renderer.output.WriteString(line)
		renderer.output.WriteString("\n")
	}
	renderer.output.WriteString("\n")
}
