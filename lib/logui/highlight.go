// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

// highlightFileContent syntax-highlights a file for the file preview,
// picking the lexer from the file name. Unknown file types and Chroma
// failures return the content unstyled; jj's own ANSI coloring (diff
// previews) is already styled and passes through untouched.
func highlightFileContent(path, content string) string {
	if strings.Contains(content, "\x1b[") {
		return content
	}
	lexer := lexers.Match(path)
	if lexer == nil {
		return content
	}

	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, content, lexer.Config().Name, "terminal256", "monokai"); err != nil {
		return content
	}
	return highlighted.String()
}
