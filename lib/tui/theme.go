// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/jsonc"
)

// Theme defines the color palette for the blazingjj TUI. Colors use
// lipgloss ANSI 256-color codes or hex strings.
//
// The fields cover universal chrome (text, selection, borders) and the
// jj-specific semantic categories: change-id prefixes, working copy,
// immutable commits, conflicts, and bookmarks.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color `json:"normal_text"`
	FaintText  lipgloss.Color `json:"faint_text"`

	// Selected row.
	SelectedBackground lipgloss.Color `json:"selected_background"`
	SelectedForeground lipgloss.Color `json:"selected_foreground"`

	// Change and commit ids: the shortest unique prefix renders
	// bright, the remainder dim, matching jj's own log output.
	ChangeIDPrefix lipgloss.Color `json:"change_id_prefix"`
	ChangeIDRest   lipgloss.Color `json:"change_id_rest"`
	CommitIDPrefix lipgloss.Color `json:"commit_id_prefix"`
	CommitIDRest   lipgloss.Color `json:"commit_id_rest"`

	// Revision states.
	WorkingCopy lipgloss.Color `json:"working_copy"`
	Immutable   lipgloss.Color `json:"immutable"`
	Conflict    lipgloss.Color `json:"conflict"`
	Divergent   lipgloss.Color `json:"divergent"`
	EmptyChange lipgloss.Color `json:"empty_change"`

	// Refs.
	Bookmark       lipgloss.Color `json:"bookmark"`
	RemoteBookmark lipgloss.Color `json:"remote_bookmark"`

	// UI chrome.
	HeaderForeground lipgloss.Color `json:"header_foreground"`
	BorderColor      lipgloss.Color `json:"border_color"`
	HelpText         lipgloss.Color `json:"help_text"`

	// Status bar notices.
	NoticeInfo  lipgloss.Color `json:"notice_info"`
	NoticeWarn  lipgloss.Color `json:"notice_warn"`
	NoticeError lipgloss.Color `json:"notice_error"`

	// Overlays.
	PopupBorder       lipgloss.Color `json:"popup_border"`
	PopupTitle        lipgloss.Color `json:"popup_title"`
	TooltipForeground lipgloss.Color `json:"tooltip_foreground"`
	TooltipBackground lipgloss.Color `json:"tooltip_background"`

	// Search and filter match highlighting.
	SearchHighlightBackground lipgloss.Color `json:"search_highlight_background"`
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	ChangeIDPrefix: lipgloss.Color("176"), // magenta, like jj
	ChangeIDRest:   lipgloss.Color("240"),
	CommitIDPrefix: lipgloss.Color("33"), // blue, like jj
	CommitIDRest:   lipgloss.Color("240"),

	WorkingCopy: lipgloss.Color("114"), // green
	Immutable:   lipgloss.Color("245"), // gray
	Conflict:    lipgloss.Color("196"), // red
	Divergent:   lipgloss.Color("208"), // orange
	EmptyChange: lipgloss.Color("114"),

	Bookmark:       lipgloss.Color("141"), // purple
	RemoteBookmark: lipgloss.Color("97"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	NoticeInfo:  lipgloss.Color("75"),
	NoticeWarn:  lipgloss.Color("220"),
	NoticeError: lipgloss.Color("196"),

	PopupBorder:       lipgloss.Color("114"),
	PopupTitle:        lipgloss.Color("51"), // cyan
	TooltipForeground: lipgloss.Color("252"),
	TooltipBackground: lipgloss.Color("237"),

	SearchHighlightBackground: lipgloss.Color("58"),
}

// LoadTheme reads a theme file in JSONC (JSON with comments and
// trailing commas) and overlays it on the default theme, so a file
// only needs to name the colors it changes.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	theme := DefaultTheme
	if err := json.Unmarshal(jsonc.ToJSON(data), &theme); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return theme, nil
}

// WithHighlight returns a copy of the theme with the selection
// background replaced by the configured highlight color (the
// blazingjj.highlight-color jj setting).
func (theme Theme) WithHighlight(color string) Theme {
	if color != "" {
		theme.SelectedBackground = lipgloss.Color(color)
	}
	return theme
}
