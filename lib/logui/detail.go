// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/blazingjj/blazingjj/lib/tui"
)

// mouseWheelLines is how many lines one wheel notch scrolls.
const mouseWheelLines = 3

// DetailsPanel shows the rendered `jj show` output for the selected
// revision. It is a viewport over a LargeText document with vim-style
// scrolling, optional soft wrap, and a scrollbar.
//
// The panel never loads anything itself: the model hands it documents
// from the show cache (possibly a stale generation while a fresh load
// is in flight) and the panel only renders.
type DetailsPanel struct {
	theme  tui.Theme
	width  int
	height int

	// document is the unwrapped source text. wrapped is the soft-wrap
	// rendering at the current width, built lazily on first use and
	// dropped on resize or document change.
	document *tui.LargeText
	wrapped  *tui.LargeText

	wrap    bool
	stale   bool
	loading bool
	topLine int
}

// NewDetailsPanel creates an empty details panel.
func NewDetailsPanel(theme tui.Theme) DetailsPanel {
	return DetailsPanel{theme: theme}
}

// SetSize updates the panel dimensions. The wrapped rendering depends
// on the width and is rebuilt on demand.
func (panel *DetailsPanel) SetSize(width, height int) {
	if width != panel.width {
		panel.wrapped = nil
	}
	panel.width = width
	panel.height = height
	panel.clampScroll()
}

// SetDocument installs the document to show. A stale document (the
// previous rendering of a rewritten change, shown while the fresh one
// loads) keeps the scroll position; a fresh document for a newly
// selected revision resets it.
func (panel *DetailsPanel) SetDocument(document *tui.LargeText, stale bool) {
	samePosition := stale || (panel.stale && !stale)
	panel.document = document
	panel.wrapped = nil
	panel.stale = stale
	panel.loading = stale
	if !samePosition {
		panel.topLine = 0
	}
	panel.clampScroll()
}

// SetLoading marks the panel as waiting for a fresh rendering without
// replacing the current content.
func (panel *DetailsPanel) SetLoading(loading bool) {
	panel.loading = loading
}

// Clear empties the panel.
func (panel *DetailsPanel) Clear() {
	panel.document = nil
	panel.wrapped = nil
	panel.stale = false
	panel.loading = false
	panel.topLine = 0
}

// Wrap reports whether soft wrap is enabled.
func (panel *DetailsPanel) Wrap() bool {
	return panel.wrap
}

// SetWrap sets the soft-wrap mode, keeping the scroll position roughly
// in place.
func (panel *DetailsPanel) SetWrap(wrap bool) {
	if panel.wrap == wrap {
		return
	}
	panel.wrap = wrap
	panel.clampScroll()
}

// ToggleWrap flips soft wrap.
func (panel *DetailsPanel) ToggleWrap() {
	panel.SetWrap(!panel.wrap)
}

// visibleDocument returns the document in the active wrap mode,
// building the wrapped rendering on first use.
func (panel *DetailsPanel) visibleDocument() *tui.LargeText {
	if panel.document == nil {
		return nil
	}
	if !panel.wrap {
		return panel.document
	}
	if panel.wrapped == nil {
		contentWidth := panel.contentWidth()
		if contentWidth < 1 {
			contentWidth = 1
		}
		panel.wrapped = tui.NewLargeText(ansi.Hardwrap(panel.document.Content(), contentWidth, true))
	}
	return panel.wrapped
}

// contentWidth is the panel width minus the scrollbar column.
func (panel *DetailsPanel) contentWidth() int {
	return panel.width - 1
}

// TotalLines returns the line count of the document in the active
// wrap mode.
func (panel *DetailsPanel) TotalLines() int {
	document := panel.visibleDocument()
	if document == nil {
		return 0
	}
	return document.Lines()
}

// ScrollOffset returns the current top line.
func (panel *DetailsPanel) ScrollOffset() int {
	return panel.topLine
}

// ScrollBy moves the viewport by delta lines (negative is up).
func (panel *DetailsPanel) ScrollBy(delta int) {
	panel.topLine += delta
	panel.clampScroll()
}

// HalfPageDown scrolls down half a screen (ctrl+d).
func (panel *DetailsPanel) HalfPageDown() { panel.ScrollBy(panel.height / 2) }

// HalfPageUp scrolls up half a screen (ctrl+u).
func (panel *DetailsPanel) HalfPageUp() { panel.ScrollBy(-panel.height / 2) }

// PageDown scrolls down a full screen (ctrl+f).
func (panel *DetailsPanel) PageDown() { panel.ScrollBy(panel.height) }

// PageUp scrolls up a full screen (ctrl+b).
func (panel *DetailsPanel) PageUp() { panel.ScrollBy(-panel.height) }

// WheelDown scrolls down one mouse wheel notch.
func (panel *DetailsPanel) WheelDown() { panel.ScrollBy(mouseWheelLines) }

// WheelUp scrolls up one mouse wheel notch.
func (panel *DetailsPanel) WheelUp() { panel.ScrollBy(-mouseWheelLines) }

// ScrollToTop jumps to the first line.
func (panel *DetailsPanel) ScrollToTop() {
	panel.topLine = 0
}

// ScrollToBottom jumps so the last line is visible.
func (panel *DetailsPanel) ScrollToBottom() {
	panel.topLine = panel.TotalLines() - panel.height
	if panel.topLine < 0 {
		panel.topLine = 0
	}
}

func (panel *DetailsPanel) clampScroll() {
	maxTop := panel.TotalLines() - panel.height
	if maxTop < 0 {
		maxTop = 0
	}
	if panel.topLine > maxTop {
		panel.topLine = maxTop
	}
	if panel.topLine < 0 {
		panel.topLine = 0
	}
}

// View renders the panel: content lines on the left, scrollbar on the
// right. A stale document gets a "(refreshing…)" banner on its first
// line so the user knows the content lags the repository.
func (panel *DetailsPanel) View(focused bool) string {
	if panel.width < 2 || panel.height < 1 {
		return ""
	}

	document := panel.visibleDocument()
	contentWidth := panel.contentWidth()

	var contentLines []string
	if document != nil {
		contentLines = document.Render(panel.topLine, panel.height)
	} else if panel.loading {
		contentLines = []string{lipgloss.NewStyle().
			Foreground(panel.theme.FaintText).
			Render("loading…")}
	}

	banner := ""
	if panel.stale && panel.loading {
		banner = lipgloss.NewStyle().
			Foreground(panel.theme.NoticeWarn).
			Render("(refreshing…) ")
	}

	scrollbar := strings.Split(
		tui.RenderScrollbar(panel.theme, panel.height, panel.TotalLines(), panel.height, panel.topLine, focused),
		"\n")

	var view strings.Builder
	for row := 0; row < panel.height; row++ {
		line := ""
		if row < len(contentLines) {
			line = contentLines[row]
		}
		if row == 0 && banner != "" {
			line = banner + line
		}
		if ansi.StringWidth(line) > contentWidth {
			line = ansi.Truncate(line, contentWidth, "…")
		}
		if remaining := contentWidth - ansi.StringWidth(line); remaining > 0 {
			line += strings.Repeat(" ", remaining)
		}
		view.WriteString(line)
		view.WriteString("\x1b[0m")
		if row < len(scrollbar) {
			view.WriteString(scrollbar[row])
		}
		if row < panel.height-1 {
			view.WriteString("\n")
		}
	}
	return view.String()
}
