// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the blazingjj TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or detail scrolling
	// depending on current focus).
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Details panel scrolling, available regardless of focus.
	ScrollUp       key.Binding
	ScrollDown     key.Binding
	HalfPageUp     key.Binding
	HalfPageDown   key.Binding
	FullPageUp     key.Binding
	FullPageDown   key.Binding
	ToggleWrap     key.Binding
	CycleDiffView  key.Binding
	FocusToggle    key.Binding
	SplitGrow      key.Binding
	SplitShrink    key.Binding
	ToggleLayout   key.Binding
	WorkingCopyRow key.Binding

	// Tab switching.
	TabLog       key.Binding
	TabBookmarks key.Binding
	TabOplog     key.Binding

	// Revset and filter.
	RevsetEdit  key.Binding
	Filter      key.Binding
	FilterClear key.Binding

	// Mutations.
	New      key.Binding
	Edit     key.Binding
	Describe key.Binding
	Abandon  key.Binding
	Squash   key.Binding
	Bookmark key.Binding
	Push     key.Binding
	Fetch    key.Binding
	Undo     key.Binding
	Restore  key.Binding

	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in binding set: vim-style navigation
// alongside arrow keys, with the detail scroll cluster on ctrl+e/y/d/u/f/b.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("C-e", "scroll down"),
	),
	HalfPageUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "half page up"),
	),
	HalfPageDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "half page down"),
	),
	FullPageUp: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("C-b", "page up"),
	),
	FullPageDown: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("C-f", "page down"),
	),
	ToggleWrap: key.NewBinding(
		key.WithKeys("W"),
		key.WithHelp("W", "toggle wrap"),
	),
	CycleDiffView: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "diff format"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	SplitGrow: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "grow list"),
	),
	SplitShrink: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "shrink list"),
	),
	ToggleLayout: key.NewBinding(
		key.WithKeys("|"),
		key.WithHelp("|", "flip layout"),
	),
	WorkingCopyRow: key.NewBinding(
		key.WithKeys("@"),
		key.WithHelp("@", "working copy"),
	),
	TabLog: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "log"),
	),
	TabBookmarks: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "bookmarks"),
	),
	TabOplog: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "oplog"),
	),
	RevsetEdit: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "revset"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new change"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Describe: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "describe"),
	),
	Abandon: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "abandon"),
	),
	Squash: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "squash"),
	),
	Bookmark: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "bookmark"),
	),
	Push: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "push"),
	),
	Fetch: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fetch"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Restore: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "restore op"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R", "f5"),
		key.WithHelp("R", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ApplyConfig overrides bindings from the blazingjj.keybinds jj config
// table. Each entry maps an action name to the list of keys that
// trigger it; unknown action names are reported back so the model can
// log them. The help label keeps the first configured key.
func (keymap *KeyMap) ApplyConfig(keybinds map[string][]string) (unknown []string) {
	bindings := map[string]*key.Binding{
		"up":             &keymap.Up,
		"down":           &keymap.Down,
		"top":            &keymap.Top,
		"bottom":         &keymap.Bottom,
		"scroll-up":      &keymap.ScrollUp,
		"scroll-down":    &keymap.ScrollDown,
		"half-page-up":   &keymap.HalfPageUp,
		"half-page-down": &keymap.HalfPageDown,
		"page-up":        &keymap.FullPageUp,
		"page-down":      &keymap.FullPageDown,
		"toggle-wrap":    &keymap.ToggleWrap,
		"diff-format":    &keymap.CycleDiffView,
		"focus":          &keymap.FocusToggle,
		"split-grow":     &keymap.SplitGrow,
		"split-shrink":   &keymap.SplitShrink,
		"toggle-layout":  &keymap.ToggleLayout,
		"working-copy":   &keymap.WorkingCopyRow,
		"tab-log":        &keymap.TabLog,
		"tab-bookmarks":  &keymap.TabBookmarks,
		"tab-oplog":      &keymap.TabOplog,
		"revset":         &keymap.RevsetEdit,
		"filter":         &keymap.Filter,
		"new":            &keymap.New,
		"edit":           &keymap.Edit,
		"describe":       &keymap.Describe,
		"abandon":        &keymap.Abandon,
		"squash":         &keymap.Squash,
		"bookmark":       &keymap.Bookmark,
		"push":           &keymap.Push,
		"fetch":          &keymap.Fetch,
		"undo":           &keymap.Undo,
		"restore":        &keymap.Restore,
		"refresh":        &keymap.Refresh,
		"help":           &keymap.Help,
		"quit":           &keymap.Quit,
	}

	for action, keys := range keybinds {
		binding, known := bindings[action]
		if !known {
			unknown = append(unknown, action)
			continue
		}
		if len(keys) == 0 {
			continue
		}
		help := binding.Help()
		*binding = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], help.Desc),
		)
	}
	return unknown
}
