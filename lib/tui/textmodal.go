// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TextModal is a bordered multi-line text editor rendered as a
// centered overlay. It backs the describe editor and any other prompt
// that needs free-form text. The model owns the modal instance, routes
// key input to Update while the modal is open, and reads Value on
// submit.
//
// Navigation: arrows, home/end (also ctrl+a/ctrl+e). Enter inserts a
// newline unless SingleLine is set, in which case submission is the
// caller's business (the modal ignores enter). Ctrl+D submits and Esc
// cancels by convention, but both are handled by the owning model, not
// here.
type TextModal struct {
	// Title is shown in the modal header, e.g. "Describe yqosp".
	Title string
	// Footer is the key hint line; when empty a default submit/cancel
	// hint is shown.
	Footer string
	// SingleLine collapses the editor to one line and makes enter a
	// no-op, for short inputs like bookmark names and revsets.
	SingleLine bool

	theme   Theme
	lines   [][]rune
	cursorX int
	cursorY int
}

// NewTextModal creates a modal pre-filled with the given text. The
// cursor starts at the end of the content.
func NewTextModal(theme Theme, title, initial string) *TextModal {
	modal := &TextModal{Title: title, theme: theme}
	for _, line := range strings.Split(initial, "\n") {
		modal.lines = append(modal.lines, []rune(line))
	}
	modal.cursorY = len(modal.lines) - 1
	modal.cursorX = len(modal.lines[modal.cursorY])
	return modal
}

// Value returns the current text content.
func (modal *TextModal) Value() string {
	lineStrings := make([]string, len(modal.lines))
	for index, line := range modal.lines {
		lineStrings[index] = string(line)
	}
	return strings.Join(lineStrings, "\n")
}

// Update applies a key press to the editor state. Keys that submit or
// dismiss the modal are not handled here; the owning model intercepts
// those before routing.
func (modal *TextModal) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes:
		for _, character := range message.Runes {
			modal.insertRune(character)
		}

	case tea.KeySpace:
		modal.insertRune(' ')

	case tea.KeyEnter:
		if modal.SingleLine {
			return
		}
		line := modal.lines[modal.cursorY]
		before := make([]rune, modal.cursorX)
		copy(before, line[:modal.cursorX])
		after := make([]rune, len(line)-modal.cursorX)
		copy(after, line[modal.cursorX:])

		modal.lines[modal.cursorY] = before
		modal.lines = append(modal.lines, nil)
		copy(modal.lines[modal.cursorY+2:], modal.lines[modal.cursorY+1:])
		modal.lines[modal.cursorY+1] = after
		modal.cursorY++
		modal.cursorX = 0

	case tea.KeyBackspace:
		if modal.cursorX > 0 {
			line := modal.lines[modal.cursorY]
			modal.lines[modal.cursorY] = append(line[:modal.cursorX-1], line[modal.cursorX:]...)
			modal.cursorX--
		} else if modal.cursorY > 0 {
			// Merge with previous line.
			previousLine := modal.lines[modal.cursorY-1]
			currentLine := modal.lines[modal.cursorY]
			modal.cursorX = len(previousLine)
			modal.lines[modal.cursorY-1] = append(previousLine, currentLine...)
			modal.lines = append(modal.lines[:modal.cursorY], modal.lines[modal.cursorY+1:]...)
			modal.cursorY--
		}

	case tea.KeyDelete:
		line := modal.lines[modal.cursorY]
		if modal.cursorX < len(line) {
			modal.lines[modal.cursorY] = append(line[:modal.cursorX], line[modal.cursorX+1:]...)
		} else if modal.cursorY < len(modal.lines)-1 {
			// Merge with next line.
			nextLine := modal.lines[modal.cursorY+1]
			modal.lines[modal.cursorY] = append(line, nextLine...)
			modal.lines = append(modal.lines[:modal.cursorY+1], modal.lines[modal.cursorY+2:]...)
		}

	case tea.KeyLeft:
		if modal.cursorX > 0 {
			modal.cursorX--
		} else if modal.cursorY > 0 {
			modal.cursorY--
			modal.cursorX = len(modal.lines[modal.cursorY])
		}

	case tea.KeyRight:
		line := modal.lines[modal.cursorY]
		if modal.cursorX < len(line) {
			modal.cursorX++
		} else if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			modal.cursorX = 0
		}

	case tea.KeyUp:
		if modal.cursorY > 0 {
			modal.cursorY--
			if modal.cursorX > len(modal.lines[modal.cursorY]) {
				modal.cursorX = len(modal.lines[modal.cursorY])
			}
		}

	case tea.KeyDown:
		if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			if modal.cursorX > len(modal.lines[modal.cursorY]) {
				modal.cursorX = len(modal.lines[modal.cursorY])
			}
		}

	case tea.KeyHome, tea.KeyCtrlA:
		modal.cursorX = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		modal.cursorX = len(modal.lines[modal.cursorY])
	}
}

// insertRune inserts a single rune at the cursor position.
func (modal *TextModal) insertRune(character rune) {
	line := modal.lines[modal.cursorY]
	newLine := make([]rune, len(line)+1)
	copy(newLine, line[:modal.cursorX])
	newLine[modal.cursorX] = character
	copy(newLine[modal.cursorX+1:], line[modal.cursorX:])
	modal.lines[modal.cursorY] = newLine
	modal.cursorX++
}

// Modal chrome overhead: 2 columns border + 2 columns padding = 4
// columns horizontal; 2 lines border + 1 title + 1 footer = 4 lines
// vertical. The inner text area gets the remainder.
const (
	textModalChromeWidth  = 4
	textModalChromeHeight = 4
	// Minimum inner text area: 30 columns wide, 5 lines tall. Below
	// this the editor is too cramped to be useful.
	textModalMinInnerWidth  = 30
	textModalMinInnerHeight = 5
	// Margin between the modal edge and the screen edge, so the user
	// can see the underlying view isn't gone. Collapses to 0 on very
	// small screens.
	textModalMargin = 4
)

// Render produces the modal overlay lines for splicing onto the view.
// Returns the rendered lines and the anchor position (top-left corner
// in screen coordinates).
func (modal *TextModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	// Size the modal to fill the screen minus a margin, but never
	// smaller than the minimum inner area plus chrome. On very small
	// screens the margin shrinks to zero before the inner area does.
	modalWidth := screenWidth - textModalMargin*2
	modalHeight := screenHeight - textModalMargin*2

	minWidth := textModalMinInnerWidth + textModalChromeWidth
	minHeight := textModalMinInnerHeight + textModalChromeHeight
	if modal.SingleLine {
		minHeight = 1 + textModalChromeHeight
		modalHeight = minHeight
	}
	if modalWidth < minWidth {
		modalWidth = minWidth
	}
	if modalHeight < minHeight {
		modalHeight = minHeight
	}
	// Clamp to screen bounds so the overlay doesn't extend past the
	// terminal edges even when the minimum exceeds the screen.
	if modalWidth > screenWidth {
		modalWidth = screenWidth
	}
	if modalHeight > screenHeight {
		modalHeight = screenHeight
	}

	innerWidth := modalWidth - textModalChromeWidth
	innerHeight := modalHeight - textModalChromeHeight

	bgStyle := lipgloss.NewStyle().
		Background(modal.theme.TooltipBackground)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.theme.PopupTitle).
		Background(modal.theme.TooltipBackground)

	footerStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.TooltipBackground)

	cursorStyle := lipgloss.NewStyle().
		Reverse(true)

	textStyle := lipgloss.NewStyle().
		Foreground(modal.theme.NormalText).
		Background(modal.theme.TooltipBackground)

	// Build title line.
	title := titleStyle.Render(modal.Title)
	titleWidth := ansi.StringWidth(title)
	if titleWidth < innerWidth {
		title += bgStyle.Render(strings.Repeat(" ", innerWidth-titleWidth))
	}

	// Build footer line.
	footerText := modal.Footer
	if footerText == "" {
		footerText = "Ctrl+D submit  Esc cancel"
	}
	footer := footerStyle.Render(footerText)
	footerWidth := ansi.StringWidth(footer)
	if footerWidth < innerWidth {
		footer += bgStyle.Render(strings.Repeat(" ", innerWidth-footerWidth))
	}

	// Build text area lines with cursor. Scroll the view if the cursor
	// is past the visible area.
	var textLines []string
	scrollOffset := 0
	if modal.cursorY >= innerHeight {
		scrollOffset = modal.cursorY - innerHeight + 1
	}

	for lineIndex := scrollOffset; lineIndex < scrollOffset+innerHeight; lineIndex++ {
		var renderedLine string
		if lineIndex < len(modal.lines) {
			line := modal.lines[lineIndex]
			if lineIndex == modal.cursorY {
				if modal.cursorX >= len(line) {
					renderedLine = textStyle.Render(string(line)) + cursorStyle.Render(" ")
				} else {
					before := textStyle.Render(string(line[:modal.cursorX]))
					atCursor := cursorStyle.Render(string(line[modal.cursorX : modal.cursorX+1]))
					after := textStyle.Render(string(line[modal.cursorX+1:]))
					renderedLine = before + atCursor + after
				}
			} else {
				renderedLine = textStyle.Render(string(line))
			}
		}

		// Pad to inner width.
		lineWidth := ansi.StringWidth(renderedLine)
		if lineWidth < innerWidth {
			renderedLine += bgStyle.Render(strings.Repeat(" ", innerWidth-lineWidth))
		}
		textLines = append(textLines, renderedLine)
	}

	// Assemble the modal content inside a border.
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		Background(modal.theme.TooltipBackground)

	inner := title + "\n" + strings.Join(textLines, "\n") + "\n" + footer
	rendered := borderStyle.Render(inner)

	// Split into lines and compute anchor for centering.
	resultLines := strings.Split(rendered, "\n")
	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}
	anchorX, anchorY := CenterAnchor(screenWidth, screenHeight, renderedWidth, len(resultLines))
	return resultLines, anchorX, anchorY
}
