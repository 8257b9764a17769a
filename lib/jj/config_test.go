// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import "testing"

func TestParseConfig_BlazingJJSection(t *testing.T) {
	t.Parallel()

	config, err := ParseConfig(`
blazingjj.highlight-color = "#204060"
blazingjj.diff-format = "git"
blazingjj.diff-tool = "difft"
blazingjj.layout = "vertical"
blazingjj.layout-percent = 30
blazingjj.keybinds.quit = ["x", "ctrl+q"]
ui.diff.format = "color-words"
templates.git-push-bookmark = "'wip-' ++ change_id.short()"
`)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if got := config.HighlightColor(); got != "#204060" {
		t.Errorf("HighlightColor() = %q, want %q", got, "#204060")
	}
	if got := config.DiffFormat(); got != DiffGit {
		t.Errorf("DiffFormat() = %v, want DiffGit", got)
	}
	tool, configured := config.DiffTool()
	if !configured || tool != "difft" {
		t.Errorf("DiffTool() = (%q, %v), want (difft, true)", tool, configured)
	}
	if got := config.Layout(); got != LayoutVertical {
		t.Errorf("Layout() = %v, want LayoutVertical", got)
	}
	if got := config.LayoutPercent(); got != 30 {
		t.Errorf("LayoutPercent() = %d, want 30", got)
	}
	keybinds := config.Keybinds()
	if len(keybinds["quit"]) != 2 || keybinds["quit"][0] != "x" {
		t.Errorf("Keybinds()[quit] = %v, want [x ctrl+q]", keybinds["quit"])
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	t.Parallel()

	config, err := ParseConfig("")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if got := config.DiffFormat(); got != DiffColorWords {
		t.Errorf("DiffFormat() = %v, want DiffColorWords", got)
	}
	if _, configured := config.DiffTool(); configured {
		t.Error("DiffTool() configured = true, want false")
	}
	if got := config.HighlightColor(); got != defaultHighlightColor {
		t.Errorf("HighlightColor() = %q, want %q", got, defaultHighlightColor)
	}
	if got := config.BookmarkTemplate(); got != defaultBookmarkTemplate {
		t.Errorf("BookmarkTemplate() = %q, want %q", got, defaultBookmarkTemplate)
	}
	if got := config.Layout(); got != LayoutHorizontal {
		t.Errorf("Layout() = %v, want LayoutHorizontal", got)
	}
	if got := config.LayoutPercent(); got != 50 {
		t.Errorf("LayoutPercent() = %d, want 50", got)
	}
}

func TestParseConfig_UIFallbacks(t *testing.T) {
	t.Parallel()

	// jj's own ui.diff settings apply when blazingjj has none.
	config, err := ParseConfig(`
ui.diff.format = "git"
ui.diff.tool = ["difft", "--color=always"]
templates.git-push-bookmark = "'push-' ++ change_id.short(10)"
`)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if got := config.DiffFormat(); got != DiffGit {
		t.Errorf("DiffFormat() = %v, want DiffGit", got)
	}
	tool, configured := config.DiffTool()
	if !configured || tool != "" {
		t.Errorf("DiffTool() = (%q, %v), want (\"\", true) for ui.diff.tool", tool, configured)
	}
	if got := config.BookmarkTemplate(); got != `'push-' ++ change_id.short(10)` {
		t.Errorf("BookmarkTemplate() = %q", got)
	}
}

func TestParseConfig_ToolImpliesDiffToolFormat(t *testing.T) {
	t.Parallel()

	config, err := ParseConfig(`blazingjj.diff-tool = "meld"` + "\n")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if got := config.DiffFormat(); got != DiffTool {
		t.Errorf("DiffFormat() = %v, want DiffTool when only a tool is configured", got)
	}
}

func TestDiffFormat_Next(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		format         DiffFormat
		toolConfigured bool
		want           DiffFormat
	}{
		{"color-words to git", DiffColorWords, false, DiffGit},
		{"git wraps without tool", DiffGit, false, DiffColorWords},
		{"git to tool", DiffGit, true, DiffTool},
		{"tool wraps", DiffTool, true, DiffColorWords},
		{"stat wraps", DiffStat, true, DiffColorWords},
	}
	for _, test := range tests {
		if got := test.format.Next(test.toolConfigured); got != test.want {
			t.Errorf("%s: Next() = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestLayoutPercent_Clamped(t *testing.T) {
	t.Parallel()

	low, err := ParseConfig("blazingjj.layout-percent = 3\n")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if got := low.LayoutPercent(); got != 10 {
		t.Errorf("LayoutPercent() = %d, want clamp to 10", got)
	}

	high, err := ParseConfig("blazingjj.layout-percent = 99\n")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if got := high.LayoutPercent(); got != 90 {
		t.Errorf("LayoutPercent() = %d, want clamp to 90", got)
	}
}
