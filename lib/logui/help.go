// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/blazingjj/blazingjj/lib/tui"
)

// helpText is the built-in help, rendered as markdown in the help
// overlay. Keys shown here are the defaults; remapped bindings via
// blazingjj.keybinds are not reflected.
const helpText = `# blazingjj

A terminal UI for [Jujutsu](https://jj-vcs.dev). All mutations go
through the ` + "`jj`" + ` CLI; anything done here can be undone with
` + "`u`" + ` or ` + "`jj undo`" + `.

## Navigation

- ` + "`j`/`k`" + ` move the selection, ` + "`g`/`G`" + ` jump to top/bottom
- ` + "`@`" + ` jumps to the working copy
- ` + "`1` `2` `3`" + ` switch between the log, bookmarks, and operation tabs
- ` + "`tab`" + ` moves focus between the list and the details panel
- ` + "`[` and `]`" + ` resize the split, ` + "`|`" + ` flips it

## Details panel

- ` + "`ctrl+e`/`ctrl+y`" + ` scroll one line
- ` + "`ctrl+d`/`ctrl+u`" + ` scroll half a page, ` + "`ctrl+f`/`ctrl+b`" + ` a full page
- ` + "`W`" + ` toggles soft wrap, ` + "`w`" + ` cycles the diff format

## Changing things

- ` + "`n`" + ` new change on the selection, ` + "`e`" + ` edit it
- ` + "`d`" + ` describe, ` + "`s`" + ` squash into parent, ` + "`a`" + ` abandon
- ` + "`b`" + ` bookmark menu, ` + "`p`" + ` push, ` + "`f`" + ` fetch
- ` + "`u`" + ` undo the last operation, ` + "`o`" + ` restore a previous one (oplog tab)

## Searching

- ` + "`r`" + ` edits the revset, ` + "`/`" + ` fuzzy-filters descriptions
- ` + "`esc`" + ` clears the filter

Press any key to close this help.
`

// renderHelpOverlay renders the help text into a bordered overlay
// sized to the screen. Returns the overlay lines and the centered
// anchor.
func renderHelpOverlay(theme tui.Theme, screenWidth, screenHeight int) ([]string, int, int) {
	contentWidth := screenWidth - 10
	if contentWidth > 78 {
		contentWidth = 78
	}
	if contentWidth < 30 {
		contentWidth = 30
	}

	rendered := tui.RenderMarkdown(helpText, theme, contentWidth)
	lines := strings.Split(rendered, "\n")

	// Cap the overlay height and scroll nothing: the help fits any
	// sane terminal, and tiny ones just see the top.
	maxLines := screenHeight - 4
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	for index, line := range lines {
		if remaining := contentWidth - ansi.StringWidth(line); remaining > 0 {
			lines[index] = line + strings.Repeat(" ", remaining)
		}
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.PopupBorder).
		Padding(0, 1)

	boxed := borderStyle.Render(strings.Join(lines, "\n"))
	boxedLines := strings.Split(boxed, "\n")
	width := 0
	if len(boxedLines) > 0 {
		width = ansi.StringWidth(boxedLines[0])
	}
	anchorX, anchorY := tui.CenterAnchor(screenWidth, screenHeight, width, len(boxedLines))
	return boxedLines, anchorX, anchorY
}
