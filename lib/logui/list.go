// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/tui"
)

// Column widths for the revision list. The description column fills
// the remaining space; ids and the timestamp are fixed.
const (
	// changeIDColumnWidth covers the eight-character short id plus one
	// trailing space.
	changeIDColumnWidth = 9
	commitIDColumnWidth = 9
	timestampWidth      = 19 // "2026-08-31 14:03:12"
	markerWidth         = 2  // "@ " / "◆ " / "○ "
)

// ListRenderer renders revision, bookmark, and operation rows within a
// given width.
type ListRenderer struct {
	theme tui.Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme tui.Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// marker returns the row marker mirroring jj's log symbols: @ for the
// working copy, ◆ for immutable commits, × for conflicted ones, ○
// otherwise.
func marker(revision jj.Revision) string {
	switch {
	case revision.WorkingCopy:
		return "@"
	case revision.Conflict:
		return "×"
	case revision.Immutable, revision.Root:
		return "◆"
	default:
		return "○"
	}
}

// RenderRevision renders one revision row:
//
//	@ yq wmzpt  Fix watcher shutdown  main  alice  2026-08-30 11:02:44
//
// The change id's unique prefix renders bright and the rest dim,
// matching jj's own output. matchPositions holds rune indices in the
// description that matched the active fuzzy filter; those characters
// get the search highlight background.
func (renderer ListRenderer) RenderRevision(revision jj.Revision, selected bool, matchPositions []int) string {
	descriptionWidth := renderer.width - markerWidth - changeIDColumnWidth - commitIDColumnWidth - timestampWidth - 1
	if descriptionWidth < 10 {
		descriptionWidth = 10
	}

	background := lipgloss.NewStyle()
	if selected {
		background = background.Background(renderer.theme.SelectedBackground)
	}
	style := func(foreground lipgloss.Color) lipgloss.Style {
		return background.Foreground(foreground)
	}

	markerColor := renderer.theme.NormalText
	switch {
	case revision.WorkingCopy:
		markerColor = renderer.theme.WorkingCopy
	case revision.Conflict:
		markerColor = renderer.theme.Conflict
	case revision.Immutable, revision.Root:
		markerColor = renderer.theme.Immutable
	}

	var row strings.Builder
	row.WriteString(style(markerColor).Render(marker(revision) + " "))

	row.WriteString(style(renderer.theme.ChangeIDPrefix).Bold(true).Render(revision.ChangeIDPrefix))
	row.WriteString(style(renderer.theme.ChangeIDRest).Render(pad(revision.ChangeIDRest, changeIDColumnWidth-len(revision.ChangeIDPrefix))))

	row.WriteString(style(renderer.theme.CommitIDPrefix).Bold(true).Render(revision.CommitIDPrefix))
	row.WriteString(style(renderer.theme.CommitIDRest).Render(pad(revision.CommitIDRest, commitIDColumnWidth-len(revision.CommitIDPrefix))))

	row.WriteString(renderer.renderDescription(revision, descriptionWidth, background, matchPositions))

	row.WriteString(style(renderer.theme.FaintText).Render(revision.Timestamp))

	// Pad the row to full width so the selection background spans the
	// whole line.
	rendered := row.String()
	if remaining := renderer.width - ansi.StringWidth(rendered); remaining > 0 {
		rendered += background.Render(strings.Repeat(" ", remaining))
	}
	return rendered
}

// renderDescription renders the description column: the description
// (or a placeholder for empty ones), divergence and conflict tags, and
// bookmark names, truncated together to the column width.
func (renderer ListRenderer) renderDescription(revision jj.Revision, width int, background lipgloss.Style, matchPositions []int) string {
	style := func(foreground lipgloss.Color) lipgloss.Style {
		return background.Foreground(foreground)
	}

	var parts []string
	description := revision.Description
	switch {
	case revision.Root:
		parts = append(parts, style(renderer.theme.Immutable).Render("root()"))
	case description == "":
		placeholder := "(no description set)"
		if revision.Empty {
			placeholder = "(empty) " + placeholder
		}
		parts = append(parts, style(renderer.theme.EmptyChange).Italic(true).Render(placeholder))
	default:
		if len(description) > width {
			description = ansi.Truncate(description, width-1, "…")
		}
		parts = append(parts, renderer.highlightMatches(description, background, matchPositions))
	}

	if revision.Divergent {
		parts = append(parts, style(renderer.theme.Divergent).Render("divergent"))
	}
	if revision.Conflict {
		parts = append(parts, style(renderer.theme.Conflict).Render("conflict"))
	}
	for _, bookmark := range revision.Bookmarks {
		color := renderer.theme.Bookmark
		if strings.Contains(bookmark, "@") {
			color = renderer.theme.RemoteBookmark
		}
		parts = append(parts, style(color).Render(bookmark))
	}

	joined := strings.Join(parts, background.Render(" "))
	if ansi.StringWidth(joined) > width {
		joined = ansi.Truncate(joined, width-1, "…")
	}
	if remaining := width - ansi.StringWidth(joined); remaining > 0 {
		joined += background.Render(strings.Repeat(" ", remaining))
	}
	return joined
}

// highlightMatches renders text with the fuzzy-match positions drawn
// on the search highlight background.
func (renderer ListRenderer) highlightMatches(text string, background lipgloss.Style, matchPositions []int) string {
	normal := background.Foreground(renderer.theme.NormalText)
	if len(matchPositions) == 0 {
		return normal.Render(text)
	}
	highlighted := lipgloss.NewStyle().
		Foreground(renderer.theme.SelectedForeground).
		Background(renderer.theme.SearchHighlightBackground)

	matched := make(map[int]bool, len(matchPositions))
	for _, position := range matchPositions {
		matched[position] = true
	}

	var row strings.Builder
	for index, character := range []rune(text) {
		if matched[index] {
			row.WriteString(highlighted.Render(string(character)))
		} else {
			row.WriteString(normal.Render(string(character)))
		}
	}
	return row.String()
}

// RenderBookmark renders one bookmark row:
//
//	main        yq wmzpt  Fix watcher shutdown
//	feat@origin zz xkqpv  (behind)
func (renderer ListRenderer) RenderBookmark(bookmark jj.Bookmark, selected bool) string {
	background := lipgloss.NewStyle()
	if selected {
		background = background.Background(renderer.theme.SelectedBackground)
	}

	nameColor := renderer.theme.Bookmark
	if bookmark.Remote != "" {
		nameColor = renderer.theme.RemoteBookmark
	}

	var row strings.Builder
	row.WriteString(background.Foreground(nameColor).Bold(bookmark.Remote == "").Render(pad(bookmark.Display(), 24)))
	changeID := string(bookmark.ChangeID)
	if len(changeID) > 8 {
		changeID = changeID[:8]
	}
	row.WriteString(background.Foreground(renderer.theme.ChangeIDPrefix).Render(pad(changeID, changeIDColumnWidth)))
	if bookmark.Conflict {
		row.WriteString(background.Foreground(renderer.theme.Conflict).Render("conflict "))
	}
	commitID := string(bookmark.CommitID)
	if len(commitID) > 8 {
		commitID = commitID[:8]
	}
	row.WriteString(background.Foreground(renderer.theme.FaintText).Render(commitID))

	rendered := row.String()
	if remaining := renderer.width - ansi.StringWidth(rendered); remaining > 0 {
		rendered += background.Render(strings.Repeat(" ", remaining))
	}
	return rendered
}

// RenderOperation renders one operation-log row:
//
//	9f2c1a8b04d1  describe commit 44ab…  alice@host  2 minutes ago
func (renderer ListRenderer) RenderOperation(operation jj.Operation, selected bool) string {
	background := lipgloss.NewStyle()
	if selected {
		background = background.Background(renderer.theme.SelectedBackground)
	}

	descriptionWidth := renderer.width - 13 - len(operation.User) - timestampWidth - 3
	if descriptionWidth < 10 {
		descriptionWidth = 10
	}
	description := operation.Description
	if len(description) > descriptionWidth {
		description = ansi.Truncate(description, descriptionWidth-1, "…")
	}

	var row strings.Builder
	row.WriteString(background.Foreground(renderer.theme.CommitIDPrefix).Render(operation.ID + " "))
	row.WriteString(background.Foreground(renderer.theme.NormalText).Render(pad(description, descriptionWidth)))
	row.WriteString(background.Foreground(renderer.theme.FaintText).Render(operation.User + " " + operation.Time))

	rendered := row.String()
	if remaining := renderer.width - ansi.StringWidth(rendered); remaining > 0 {
		rendered += background.Render(strings.Repeat(" ", remaining))
	}
	return rendered
}

// pad right-pads text with spaces to the given width, truncating when
// it does not fit.
func pad(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(text) >= width {
		return ansi.Truncate(text, width, "")
	}
	return fmt.Sprintf("%-*s", width, text)
}
