// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "strings"

// LargeText stores a large ANSI-colored string in a form that renders
// a small window of lines cheaply. Converting multi-megabyte jj output
// into per-line strings up front would double its memory; instead the
// content is kept as one string plus an index of line start offsets,
// and only the visible range is sliced out per frame.
type LargeText struct {
	content   string
	lineStart []int
}

// NewLargeText indexes the line starts of content. Both LF and CRLF
// line endings are handled; a CRLF pair terminates a single line.
func NewLargeText(content string) *LargeText {
	var lineStart []int
	i := 0
	for i < len(content) {
		lineStart = append(lineStart, i)
		for i < len(content) && content[i] != '\n' && content[i] != '\r' {
			i++
		}
		// A CR LF (or LF CR) pair belongs to one line.
		if i+1 < len(content) && isLineBreak(content[i+1]) && content[i] != content[i+1] {
			i++
		}
		i++
	}
	return &LargeText{content: content, lineStart: lineStart}
}

func isLineBreak(c byte) bool {
	return c == '\n' || c == '\r'
}

// Lines returns the number of lines in the content.
func (text *LargeText) Lines() int {
	return len(text.lineStart)
}

// Content returns the underlying string. Used to re-index the text
// after transformations like soft-wrapping.
func (text *LargeText) Content() string {
	return text.content
}

// Render returns the lines in [topLine, topLine+lineCount), with line
// terminators stripped. ANSI escape sequences pass through untouched;
// the terminal renderer interprets them. Requests beyond the end of
// the content return fewer (or zero) lines, never an error.
func (text *LargeText) Render(topLine, lineCount int) []string {
	if topLine < 0 {
		topLine = 0
	}
	start := text.offsetOf(topLine)
	end := text.offsetOf(topLine + lineCount)
	window := text.content[start:end]
	if window == "" {
		return nil
	}

	lines := strings.Split(window, "\n")
	// The window ends either at end-of-content or just before the
	// next line's start; a trailing terminator leaves an empty
	// final element.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for index, line := range lines {
		lines[index] = strings.TrimRight(line, "\r")
	}
	return lines
}

// offsetOf returns the byte offset of the given line start, or the
// content length for lines past the end.
func (text *LargeText) offsetOf(line int) int {
	if line >= len(text.lineStart) {
		return len(text.content)
	}
	return text.lineStart[line]
}
