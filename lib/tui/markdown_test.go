// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("", DefaultTheme, 80); got != "" {
		t.Errorf("RenderMarkdown(\"\") = %q, want empty", got)
	}
}

func TestRenderMarkdownHeadingUppercased(t *testing.T) {
	output := RenderMarkdown("# Keybindings", DefaultTheme, 80)
	if !strings.Contains(ansi.Strip(output), "KEYBINDINGS") {
		t.Errorf("level-1 heading not uppercased: %q", output)
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	// A soft line break in the source becomes a space, so the two
	// words end up on one rendered line.
	output := RenderMarkdown("alpha\nbeta", DefaultTheme, 80)
	plain := ansi.Strip(output)
	if strings.Count(plain, "\n") != 0 {
		t.Errorf("soft break not reflowed: %q", plain)
	}
	if !strings.Contains(plain, "alpha beta") {
		t.Errorf("expected %q to contain \"alpha beta\"", plain)
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	input := strings.Repeat("word ", 30)
	output := RenderMarkdown(input, DefaultTheme, 40)
	for _, line := range strings.Split(output, "\n") {
		if width := ansi.StringWidth(line); width > 40 {
			t.Errorf("line wider than 40 columns (%d): %q", width, line)
		}
	}
}

func TestRenderMarkdownList(t *testing.T) {
	output := ansi.Strip(RenderMarkdown("- first\n- second", DefaultTheme, 80))
	if !strings.Contains(output, "• first") || !strings.Contains(output, "• second") {
		t.Errorf("list bullets missing: %q", output)
	}
}

func TestRenderMarkdownOrderedList(t *testing.T) {
	output := ansi.Strip(RenderMarkdown("1. one\n2. two", DefaultTheme, 80))
	if !strings.Contains(output, "1. one") || !strings.Contains(output, "2. two") {
		t.Errorf("ordered list numbering missing: %q", output)
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	input := "```go\nfunc main() {}\n```"
	output := RenderMarkdown(input, DefaultTheme, 80)
	if !strings.Contains(ansi.Strip(output), "func main() {}") {
		t.Errorf("code block content missing: %q", output)
	}
	// Chroma should have colored the go keyword.
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("expected ANSI styling in code block output")
	}
}

func TestRenderMarkdownCodeSpan(t *testing.T) {
	output := RenderMarkdown("press `ctrl+d` to scroll", DefaultTheme, 80)
	if !strings.Contains(ansi.Strip(output), "ctrl+d") {
		t.Errorf("code span content missing: %q", output)
	}
}
