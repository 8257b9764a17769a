// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MessagePopup is a centered bordered popup showing a titled block of
// text, used for command output (git fetch/push results, undo
// confirmations) and error details. Any key dismisses it; that routing
// lives in the owning model.
type MessagePopup struct {
	Title string
	Text  string
}

// maxPopupWidth bounds the popup so long single-line command output
// wraps instead of spanning the whole terminal.
const maxPopupWidth = 100

// Render produces the popup overlay lines and the centered anchor.
func (popup MessagePopup) Render(theme Theme, screenWidth, screenHeight int) ([]string, int, int) {
	contentWidth := maxPopupWidth
	if limit := screenWidth - 6; contentWidth > limit {
		contentWidth = limit
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.PopupTitle).
		Padding(0, 1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(contentWidth).
		Padding(0, 1)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.PopupBorder)

	inner := titleStyle.Render(popup.Title) + "\n" +
		bodyStyle.Render(strings.TrimRight(popup.Text, "\n"))
	rendered := borderStyle.Render(inner)

	lines := strings.Split(rendered, "\n")
	width := 0
	if len(lines) > 0 {
		width = ansi.StringWidth(lines[0])
	}
	anchorX, anchorY := CenterAnchor(screenWidth, screenHeight, width, len(lines))
	return lines, anchorX, anchorY
}

// ConfirmDialog is a small yes/no prompt for destructive operations
// (abandon, undo, restore, push to a new remote bookmark). The default
// answer is No; left/right or tab moves the selection, enter confirms.
type ConfirmDialog struct {
	Title  string
	Prompt string
	// Yes is true when the Yes button is highlighted.
	Yes bool
}

// Toggle flips the highlighted button.
func (dialog *ConfirmDialog) Toggle() {
	dialog.Yes = !dialog.Yes
}

// Render produces the dialog overlay lines and the centered anchor.
func (dialog ConfirmDialog) Render(theme Theme, screenWidth, screenHeight int) ([]string, int, int) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.NoticeWarn).
		Padding(0, 1)

	promptStyle := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Padding(0, 1)

	buttonStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Padding(0, 2)
	selectedButtonStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground).
		Padding(0, 2)

	yesButton := buttonStyle.Render("Yes")
	noButton := selectedButtonStyle.Render("No")
	if dialog.Yes {
		yesButton = selectedButtonStyle.Render("Yes")
		noButton = buttonStyle.Render("No")
	}
	buttons := yesButton + "   " + noButton

	// Center the button row under the prompt.
	promptLine := promptStyle.Render(dialog.Prompt)
	innerWidth := ansi.StringWidth(promptLine)
	if titleWidth := ansi.StringWidth(titleStyle.Render(dialog.Title)); titleWidth > innerWidth {
		innerWidth = titleWidth
	}
	buttonsWidth := ansi.StringWidth(buttons)
	buttonPad := (innerWidth - buttonsWidth) / 2
	if buttonPad < 0 {
		buttonPad = 0
	}
	buttonLine := strings.Repeat(" ", buttonPad) + buttons

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.NoticeWarn)

	inner := titleStyle.Render(dialog.Title) + "\n" +
		promptLine + "\n\n" +
		buttonLine
	rendered := borderStyle.Render(inner)

	lines := strings.Split(rendered, "\n")
	width := 0
	if len(lines) > 0 {
		width = ansi.StringWidth(lines[0])
	}
	anchorX, anchorY := CenterAnchor(screenWidth, screenHeight, width, len(lines))
	return lines, anchorX, anchorY
}
