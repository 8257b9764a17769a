// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DiffFormat selects how revision contents are rendered in the detail
// panel.
type DiffFormat int

const (
	// DiffColorWords is jj's default word-level diff.
	DiffColorWords DiffFormat = iota
	// DiffGit is unified git-style diff output.
	DiffGit
	// DiffTool renders via an external diff tool (COLUMNS is exported
	// so the tool can match the panel width).
	DiffTool
	// DiffSummary lists changed paths only.
	DiffSummary
	// DiffStat shows per-file change counts.
	DiffStat
)

// String returns the kebab-case name used in jj configuration.
func (format DiffFormat) String() string {
	switch format {
	case DiffGit:
		return "git"
	case DiffTool:
		return "diff-tool"
	case DiffSummary:
		return "summary"
	case DiffStat:
		return "stat"
	default:
		return "color-words"
	}
}

// ParseDiffFormat maps a kebab-case config value to a DiffFormat.
func ParseDiffFormat(value string) (DiffFormat, bool) {
	switch value {
	case "color-words":
		return DiffColorWords, true
	case "git":
		return DiffGit, true
	case "diff-tool":
		return DiffTool, true
	case "summary":
		return DiffSummary, true
	case "stat":
		return DiffStat, true
	default:
		return DiffColorWords, false
	}
}

// Next returns the format the W key cycles to: color-words → git →
// diff-tool (when a tool is configured) → color-words. Summary and
// stat are reachable only through configuration, never the cycle.
func (format DiffFormat) Next(toolConfigured bool) DiffFormat {
	switch format {
	case DiffColorWords:
		return DiffGit
	case DiffGit:
		if toolConfigured {
			return DiffTool
		}
		return DiffColorWords
	default:
		return DiffColorWords
	}
}

// Layout selects how the list and detail panes divide the terminal.
type Layout int

const (
	// LayoutHorizontal places the panes side by side.
	LayoutHorizontal Layout = iota
	// LayoutVertical stacks the panes.
	LayoutVertical
)

// Config is the subset of jj configuration blazingjj reads, produced
// by parsing "jj config list" output as TOML. blazingjj's own settings
// live under the [blazingjj] table; jj's ui.diff settings and push
// bookmark template serve as fallbacks so the TUI agrees with what
// plain jj would do.
type Config struct {
	BlazingJJ ConfigBlazingJJ `toml:"blazingjj"`
	UI        ConfigUI        `toml:"ui"`
	Templates ConfigTemplates `toml:"templates"`
}

// ConfigBlazingJJ is the [blazingjj] table.
type ConfigBlazingJJ struct {
	HighlightColor   string              `toml:"highlight-color"`
	DiffFormat       string              `toml:"diff-format"`
	DiffTool         string              `toml:"diff-tool"`
	BookmarkTemplate string              `toml:"bookmark-template"`
	Layout           string              `toml:"layout"`
	LayoutPercent    int                 `toml:"layout-percent"`
	Keybinds         map[string][]string `toml:"keybinds"`
}

// ConfigUI mirrors jj's own [ui] table.
type ConfigUI struct {
	Diff ConfigUIDiff `toml:"diff"`
}

// ConfigUIDiff mirrors [ui.diff]. Tool is declared as any because jj
// accepts both a string ("difft") and a command array (["difft",
// "--color=always"]); blazingjj only cares whether it is set.
type ConfigUIDiff struct {
	Format string `toml:"format"`
	Tool   any    `toml:"tool"`
}

// ConfigTemplates mirrors the [templates] table.
type ConfigTemplates struct {
	GitPushBookmark string `toml:"git-push-bookmark"`
}

// defaultBookmarkTemplate names new push bookmarks after the change id,
// matching jj's own git-push-bookmark default.
const defaultBookmarkTemplate = `'push-' ++ change_id.short()`

// defaultHighlightColor is the selection background when the user
// configures nothing.
const defaultHighlightColor = "#323296"

// ParseConfig parses "jj config list" output. The output is a flat
// sequence of dotted TOML assignments, which a TOML decoder accepts
// directly. Unknown keys are ignored.
func ParseConfig(output string) (Config, error) {
	var config Config
	if _, err := toml.Decode(output, &config); err != nil {
		return Config{}, fmt.Errorf("parse jj config: %w", err)
	}
	return config, nil
}

// DiffFormat resolves the configured diff format: blazingjj.diff-format
// wins, then ui.diff.format, then diff-tool when one is configured,
// then color-words.
func (config Config) DiffFormat() DiffFormat {
	if format, ok := ParseDiffFormat(config.BlazingJJ.DiffFormat); ok && config.BlazingJJ.DiffFormat != "" {
		return format
	}
	if format, ok := ParseDiffFormat(config.UI.Diff.Format); ok && config.UI.Diff.Format != "" {
		return format
	}
	if _, configured := config.DiffTool(); configured {
		return DiffTool
	}
	return DiffColorWords
}

// DiffTool returns the external diff tool and whether any tool is
// configured. An empty name with configured=true means "use jj's own
// ui.diff.tool setting" — blazingjj then omits the --tool flag and
// lets jj pick.
func (config Config) DiffTool() (name string, configured bool) {
	if config.BlazingJJ.DiffTool != "" {
		return config.BlazingJJ.DiffTool, true
	}
	if config.UI.Diff.Tool != nil {
		return "", true
	}
	return "", false
}

// HighlightColor returns the selection highlight color as a hex or
// named color string for lipgloss.
func (config Config) HighlightColor() string {
	if config.BlazingJJ.HighlightColor != "" {
		return config.BlazingJJ.HighlightColor
	}
	return defaultHighlightColor
}

// BookmarkTemplate returns the jj template used to name newly created
// push bookmarks.
func (config Config) BookmarkTemplate() string {
	if config.BlazingJJ.BookmarkTemplate != "" {
		return config.BlazingJJ.BookmarkTemplate
	}
	if config.Templates.GitPushBookmark != "" {
		return config.Templates.GitPushBookmark
	}
	return defaultBookmarkTemplate
}

// Layout returns the configured pane layout. Unknown values fall back
// to horizontal.
func (config Config) Layout() Layout {
	if config.BlazingJJ.Layout == "vertical" {
		return LayoutVertical
	}
	return LayoutHorizontal
}

// LayoutPercent returns the list pane's share of the terminal,
// clamped to 10–90.
func (config Config) LayoutPercent() int {
	percent := config.BlazingJJ.LayoutPercent
	if percent == 0 {
		return 50
	}
	if percent < 10 {
		return 10
	}
	if percent > 90 {
		return 90
	}
	return percent
}

// Keybinds returns the configured key overrides: action name →
// replacement key list. Nil when the user configured none.
func (config Config) Keybinds() map[string][]string {
	return config.BlazingJJ.Keybinds
}
