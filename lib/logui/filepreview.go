// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/tui"
)

// fileListMsg delivers the changed files of a revision for the
// per-file preview dropdown.
type fileListMsg struct {
	Rev   string
	Files []jj.FileChange
	Err   error
}

// filePreviewMsg delivers one file's rendered preview.
type filePreviewMsg struct {
	Rev  string
	Path string
	Text *tui.LargeText
	Err  error
}

// loadFileList fetches the list of files a revision changed.
func (source *Source) loadFileList(rev string) tea.Cmd {
	runner := source.env.Runner()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		files, err := runner.DiffSummary(ctx, rev)
		return fileListMsg{Rev: rev, Files: files, Err: err}
	}
}

// loadFilePreview renders one file of a revision. Added files show
// their full content with syntax highlighting; modified and deleted
// files show their diff in the given format, which jj already colors.
func (source *Source) loadFilePreview(rev, path, status string, format jj.DiffFormat) tea.Cmd {
	runner := source.env.Runner()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		var output string
		var err error
		if status == "A" {
			output, err = runner.FileShow(ctx, rev, path)
			if err == nil {
				output = highlightFileContent(path, output)
			}
		} else {
			if format == jj.DiffTool || format == jj.DiffSummary || format == jj.DiffStat {
				format = jj.DiffColorWords
			}
			output, err = runner.FileDiff(ctx, rev, path, format)
		}
		if err != nil {
			return filePreviewMsg{Rev: rev, Path: path, Err: err}
		}
		return filePreviewMsg{Rev: rev, Path: path, Text: tui.NewLargeText(output)}
	}
}

// openFileDropdown shows the changed-file list for the selected
// revision.
func (model *Model) openFileDropdown(rev string, files []jj.FileChange) {
	if len(files) == 0 {
		model.logger.Info("revision changes no files")
		return
	}
	options := make([]tui.DropdownOption, len(files))
	for index, file := range files {
		options[index] = tui.DropdownOption{
			Label: file.Status + " " + file.Path,
			Value: file.Status + ":" + file.Path,
		}
	}
	anchorX, anchorY := model.dropdownAnchor()
	model.dropdown = &tui.DropdownOverlay{
		Options: options,
		AnchorX: anchorX,
		AnchorY: anchorY,
		Action:  "file-preview",
		Target:  rev,
	}
}
