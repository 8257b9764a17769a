// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/tui"
)

// describeLoadedMsg delivers the full multi-line description of a
// revision, loaded before the describe editor opens so editing never
// truncates a description to its first line.
type describeLoadedMsg struct {
	Rev         string
	Description string
	Err         error
}

// loadDescription fetches a revision's full description.
func (source *Source) loadDescription(rev string) tea.Cmd {
	runner := source.env.Runner()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		output, err := runner.Run(ctx, "log", "--no-graph", "-r", rev, "-T", "description")
		if err != nil {
			return describeLoadedMsg{Rev: rev, Err: err}
		}
		return describeLoadedMsg{Rev: rev, Description: strings.TrimRight(output, "\n")}
	}
}

// updateKey routes a key press through the overlay stack and then the
// main key map. Overlays capture all input while open.
func (model *Model) updateKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case model.popup != nil:
		model.popup = nil
		return model, nil

	case model.confirm != nil:
		return model.updateConfirmKey(message)

	case model.dropdown != nil:
		return model.updateDropdownKey(message)

	case model.textModal != nil:
		return model.updateTextModalKey(message)

	case model.helpOpen:
		model.helpOpen = false
		return model, nil

	case model.filterEditing:
		return model.updateFilterKey(message)
	}
	return model.updateMainKey(message)
}

func (model *Model) updateConfirmKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.confirm = nil
		return model, nil
	case tea.KeyLeft, tea.KeyRight, tea.KeyTab:
		model.confirm.dialog.Toggle()
		return model, nil
	case tea.KeyEnter:
		confirm := model.confirm
		model.confirm = nil
		if confirm.dialog.Yes {
			return model, confirm.command
		}
		return model, nil
	}
	switch message.String() {
	case "y":
		confirm := model.confirm
		model.confirm = nil
		return model, confirm.command
	case "n", "q":
		model.confirm = nil
	}
	return model, nil
}

func (model *Model) updateDropdownKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.dropdown = nil
		return model, nil
	case tea.KeyUp:
		model.dropdown.MoveUp()
		return model, nil
	case tea.KeyDown:
		model.dropdown.MoveDown()
		return model, nil
	case tea.KeyEnter:
		return model.runDropdownSelection()
	}
	switch message.String() {
	case "k":
		model.dropdown.MoveUp()
	case "j":
		model.dropdown.MoveDown()
	case "q":
		model.dropdown = nil
	}
	return model, nil
}

func (model *Model) updateTextModalKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	submit := message.Type == tea.KeyCtrlD ||
		(model.textModal.SingleLine && message.Type == tea.KeyEnter)

	switch {
	case message.Type == tea.KeyEscape:
		model.textModal = nil
		return model, nil
	case submit:
		value := model.textModal.Value()
		purpose := model.textPurpose
		target := model.textTarget
		model.textModal = nil
		return model.submitText(purpose, target, value)
	}
	model.textModal.Update(message)
	return model, nil
}

func (model *Model) submitText(purpose textPurpose, target, value string) (tea.Model, tea.Cmd) {
	switch purpose {
	case textDescribe:
		return model, model.source.Describe(target, value)
	case textRevset:
		model.revset = strings.TrimSpace(value)
		model.selectedChange = ""
		model.cursorLog = 0
		model.listTop = 0
		model.loadingSnapshot = true
		return model, model.source.LoadSnapshot(model.revset)
	case textBookmarkName:
		name := strings.TrimSpace(value)
		if name == "" {
			return model, nil
		}
		return model, model.source.SetBookmark(name, target)
	}
	return model, nil
}

func (model *Model) updateFilterKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.filterEditing = false
		model.filterInput = ""
		model.applyFilter()
		model.clampCursor()
		return model, model.ensureShow()
	case tea.KeyEnter:
		model.filterEditing = false
		return model, nil
	case tea.KeyBackspace:
		if model.filterInput != "" {
			runes := []rune(model.filterInput)
			model.filterInput = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes:
		model.filterInput += string(message.Runes)
	case tea.KeySpace:
		model.filterInput += " "
	default:
		return model, nil
	}
	model.applyFilter()
	model.cursorLog = 0
	model.listTop = 0
	return model, model.ensureShow()
}

func (model *Model) updateMainKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keymap := model.keymap
	switch {
	case key.Matches(message, keymap.Quit):
		model.quitting = true
		model.persistState()
		if model.watcher != nil {
			model.watcher.Close()
		}
		return model, tea.Quit

	case key.Matches(message, keymap.Help):
		model.helpOpen = true
		return model, nil

	case key.Matches(message, keymap.Up):
		if model.focus == focusDetails {
			model.details.ScrollBy(-1)
			return model, nil
		}
		return model.moveCursor(-1)

	case key.Matches(message, keymap.Down):
		if model.focus == focusDetails {
			model.details.ScrollBy(1)
			return model, nil
		}
		return model.moveCursor(1)

	case key.Matches(message, keymap.Top):
		if model.focus == focusDetails {
			model.details.ScrollToTop()
			return model, nil
		}
		model.setCursor(0)
		model.scrollListToCursor()
		return model, model.ensureShow()

	case key.Matches(message, keymap.Bottom):
		if model.focus == focusDetails {
			model.details.ScrollToBottom()
			return model, nil
		}
		model.setCursor(model.listLength() - 1)
		model.clampCursor()
		return model, model.ensureShow()

	case key.Matches(message, keymap.ScrollUp):
		model.details.ScrollBy(-1)
		return model, nil
	case key.Matches(message, keymap.ScrollDown):
		model.details.ScrollBy(1)
		return model, nil
	case key.Matches(message, keymap.HalfPageUp):
		model.details.HalfPageUp()
		return model, nil
	case key.Matches(message, keymap.HalfPageDown):
		model.details.HalfPageDown()
		return model, nil
	case key.Matches(message, keymap.FullPageUp):
		model.details.PageUp()
		return model, nil
	case key.Matches(message, keymap.FullPageDown):
		model.details.PageDown()
		return model, nil

	case key.Matches(message, keymap.ToggleWrap):
		model.details.ToggleWrap()
		return model, nil

	case key.Matches(message, keymap.CycleDiffView):
		model.diffFormat = model.diffFormat.Next(model.toolConfigured)
		return model, model.ensureShow()

	case key.Matches(message, keymap.FocusToggle):
		if model.focus == focusList {
			model.focus = focusDetails
		} else {
			model.focus = focusList
		}
		return model, nil

	case key.Matches(message, keymap.SplitGrow):
		return model.adjustSplit(5)
	case key.Matches(message, keymap.SplitShrink):
		return model.adjustSplit(-5)

	case key.Matches(message, keymap.ToggleLayout):
		if model.layout == jj.LayoutHorizontal {
			model.layout = jj.LayoutVertical
		} else {
			model.layout = jj.LayoutHorizontal
		}
		model.details.SetSize(model.detailsSize())
		model.clampCursor()
		return model, model.ensureShow()

	case key.Matches(message, keymap.WorkingCopyRow):
		model.tab = TabLog
		for position, index := range model.visibleRevisionIndexes() {
			if model.snapshot.Revisions[index].WorkingCopy {
				model.cursorLog = position
				break
			}
		}
		model.scrollListToCursor()
		return model, model.ensureShow()

	case key.Matches(message, keymap.TabLog):
		return model.switchTab(TabLog)
	case key.Matches(message, keymap.TabBookmarks):
		return model.switchTab(TabBookmarks)
	case key.Matches(message, keymap.TabOplog):
		return model.switchTab(TabOplog)

	case key.Matches(message, keymap.RevsetEdit):
		modal := tui.NewTextModal(model.theme, "Revset", model.revset)
		modal.SingleLine = true
		modal.Footer = "Enter apply  Esc cancel"
		model.textModal = modal
		model.textPurpose = textRevset
		return model, nil

	case key.Matches(message, keymap.Filter):
		if model.tab == TabLog {
			model.filterEditing = true
		}
		return model, nil

	case key.Matches(message, keymap.FilterClear):
		if model.filterInput != "" {
			model.filterInput = ""
			model.applyFilter()
			model.clampCursor()
			return model, model.ensureShow()
		}
		return model, nil

	case key.Matches(message, keymap.Refresh):
		model.loadingSnapshot = true
		return model, model.source.LoadSnapshot(model.revset)

	case key.Matches(message, keymap.Fetch):
		return model, model.source.Fetch()

	case key.Matches(message, keymap.Undo):
		model.confirm = &confirmAction{
			dialog:  tui.ConfirmDialog{Title: "Undo", Prompt: "Undo the latest jj operation?"},
			command: model.source.Undo(),
		}
		return model, nil
	}

	return model.updateTabActionKey(message)
}

// updateTabActionKey handles keys whose meaning depends on the active
// tab (mutations on the selection).
func (model *Model) updateTabActionKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keymap := model.keymap

	if model.tab == TabBookmarks {
		bookmark, selected := model.selectedBookmark()
		if !selected {
			return model, nil
		}
		switch {
		case message.Type == tea.KeyEnter:
			// Jump to the bookmarked revision in the log tab.
			model.tab = TabLog
			model.selectedChange = bookmark.ChangeID
			for position, index := range model.visibleRevisionIndexes() {
				if model.snapshot.Revisions[index].ChangeID == bookmark.ChangeID {
					model.cursorLog = position
					break
				}
			}
			model.scrollListToCursor()
			return model, model.ensureShow()
		case key.Matches(message, keymap.Push):
			return model, model.source.Push(bookmark.Name, false)
		case key.Matches(message, keymap.Bookmark):
			model.openBookmarkOpsDropdown(bookmark)
			return model, nil
		}
		return model, nil
	}

	if model.tab == TabOplog {
		operation, selected := model.selectedOperation()
		if !selected {
			return model, nil
		}
		if key.Matches(message, keymap.Restore) {
			model.confirm = &confirmAction{
				dialog: tui.ConfirmDialog{
					Title:  "Restore operation",
					Prompt: "Restore the repository to " + operation.ID + "?",
				},
				command: model.source.RestoreOperation(operation.ID),
			}
		}
		return model, nil
	}

	revision, selected := model.selectedRevision()
	if !selected {
		return model, nil
	}
	rev := string(revision.CommitID)

	switch {
	case message.Type == tea.KeyEnter:
		return model, model.source.loadFileList(rev)

	case key.Matches(message, keymap.New):
		return model, model.source.New(rev)

	case key.Matches(message, keymap.Edit):
		if revision.Immutable || revision.Root {
			model.logger.Warn("cannot edit an immutable revision", "change", revision.ChangeIDPrefix)
			return model, nil
		}
		return model, model.source.Edit(rev)

	case key.Matches(message, keymap.Describe):
		if revision.Immutable || revision.Root {
			model.logger.Warn("cannot describe an immutable revision", "change", revision.ChangeIDPrefix)
			return model, nil
		}
		return model, model.source.loadDescription(rev)

	case key.Matches(message, keymap.Abandon):
		model.confirm = &confirmAction{
			dialog: tui.ConfirmDialog{
				Title:  "Abandon",
				Prompt: "Abandon change " + revision.ChangeIDPrefix + revision.ChangeIDRest + "?",
			},
			command: model.source.Abandon(rev),
		}
		return model, nil

	case key.Matches(message, keymap.Squash):
		return model, model.source.Squash(rev)

	case key.Matches(message, keymap.Bookmark):
		model.openRevisionBookmarkDropdown(revision)
		return model, nil

	case key.Matches(message, keymap.Push):
		model.confirm = &confirmAction{
			dialog: tui.ConfirmDialog{
				Title:  "Push change",
				Prompt: "Push " + revision.ChangeIDPrefix + revision.ChangeIDRest + " under a generated bookmark?",
			},
			command: model.source.PushChange(rev),
		}
		return model, nil
	}
	return model, nil
}

// dropdownAnchor places a dropdown next to the cursor row.
func (model *Model) dropdownAnchor() (int, int) {
	anchorY := tabBarHeight + model.cursor() - model.listTop + 1
	if anchorY > model.height-3 {
		anchorY = model.height - 3
	}
	return 4, anchorY
}

func (model *Model) openRevisionBookmarkDropdown(revision jj.Revision) {
	anchorX, anchorY := model.dropdownAnchor()
	options := []tui.DropdownOption{
		{Label: "Set bookmark here…", Value: "set"},
	}
	for _, bookmark := range revision.Bookmarks {
		if !strings.Contains(bookmark, "@") {
			options = append(options, tui.DropdownOption{Label: "Delete " + bookmark, Value: "delete:" + bookmark})
		}
	}
	model.dropdown = &tui.DropdownOverlay{
		Options: options,
		AnchorX: anchorX,
		AnchorY: anchorY,
		Action:  "revision-bookmark",
		Target:  string(revision.CommitID),
	}
}

func (model *Model) openBookmarkOpsDropdown(bookmark jj.Bookmark) {
	anchorX, anchorY := model.dropdownAnchor()
	options := []tui.DropdownOption{
		{Label: "Push", Value: "push"},
		{Label: "Push (allow new)", Value: "push-new"},
	}
	if bookmark.Remote == "" {
		options = append(options,
			tui.DropdownOption{Label: "Delete", Value: "delete"},
			tui.DropdownOption{Label: "Forget", Value: "forget"},
		)
	}
	model.dropdown = &tui.DropdownOverlay{
		Options: options,
		AnchorX: anchorX,
		AnchorY: anchorY,
		Action:  "bookmark-ops",
		Target:  bookmark.Name,
	}
}

func (model *Model) runDropdownSelection() (tea.Model, tea.Cmd) {
	dropdown := model.dropdown
	model.dropdown = nil
	selection := dropdown.Selected().Value

	switch dropdown.Action {
	case "revision-bookmark":
		if selection == "set" {
			modal := tui.NewTextModal(model.theme, "Bookmark name", "")
			modal.SingleLine = true
			modal.Footer = "Enter create  Esc cancel"
			model.textModal = modal
			model.textPurpose = textBookmarkName
			model.textTarget = dropdown.Target
			return model, nil
		}
		if name, found := strings.CutPrefix(selection, "delete:"); found {
			model.confirm = &confirmAction{
				dialog: tui.ConfirmDialog{
					Title:  "Delete bookmark",
					Prompt: "Delete bookmark " + name + "?",
				},
				command: model.source.DeleteBookmark(name),
			}
		}
		return model, nil

	case "file-preview":
		status, path, found := strings.Cut(selection, ":")
		if !found {
			return model, nil
		}
		return model, model.source.loadFilePreview(dropdown.Target, path, status, model.diffFormat)

	case "bookmark-ops":
		switch selection {
		case "push":
			return model, model.source.Push(dropdown.Target, false)
		case "push-new":
			model.confirm = &confirmAction{
				dialog: tui.ConfirmDialog{
					Title:  "Push new bookmark",
					Prompt: "Create " + dropdown.Target + " on the remote?",
				},
				command: model.source.Push(dropdown.Target, true),
			}
		case "delete":
			model.confirm = &confirmAction{
				dialog: tui.ConfirmDialog{
					Title:  "Delete bookmark",
					Prompt: "Delete bookmark " + dropdown.Target + "?",
				},
				command: model.source.DeleteBookmark(dropdown.Target),
			}
		case "forget":
			return model, model.source.ForgetBookmark(dropdown.Target)
		}
		return model, nil
	}
	return model, nil
}

func (model *Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	cursor := model.cursor() + delta
	length := model.listLength()
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	model.setCursor(cursor)
	model.scrollListToCursor()
	return model, model.ensureShow()
}

func (model *Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	model.tab = tab
	model.listTop = 0
	model.clampCursor()
	model.focus = focusList
	return model, model.ensureShow()
}

func (model *Model) adjustSplit(delta int) (tea.Model, tea.Cmd) {
	model.layoutPercent += delta
	if model.layoutPercent < 10 {
		model.layoutPercent = 10
	}
	if model.layoutPercent > 90 {
		model.layoutPercent = 90
	}
	model.details.SetSize(model.detailsSize())
	model.scrollListToCursor()
	// The diff-tool format renders at the panel width, so a resize
	// needs a fresh document.
	return model, model.ensureShow()
}

// updateMouse routes mouse events: wheel scrolling per pane, clicks
// for row selection and dropdown interaction.
func (model *Model) updateMouse(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	if model.popup != nil || model.confirm != nil || model.textModal != nil || model.helpOpen {
		return model, nil
	}

	if model.dropdown != nil {
		if message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft {
			if !model.dropdown.Contains(message.X, message.Y) {
				model.dropdown = nil
				return model, nil
			}
			if index := model.dropdown.OptionAtY(message.Y); index >= 0 {
				model.dropdown.Cursor = index
				return model.runDropdownSelection()
			}
		}
		return model, nil
	}

	overDetails := model.pointInDetails(message.X, message.Y)

	switch message.Button {
	case tea.MouseButtonWheelUp:
		if overDetails {
			model.details.WheelUp()
			return model, nil
		}
		return model.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		if overDetails {
			model.details.WheelDown()
			return model, nil
		}
		return model.moveCursor(1)
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return model, nil
		}
		if overDetails {
			model.focus = focusDetails
			return model, nil
		}
		row := message.Y - tabBarHeight
		if row < 0 {
			return model, nil
		}
		target := model.listTop + row
		if target < model.listLength() {
			model.focus = focusList
			model.setCursor(target)
			return model, model.ensureShow()
		}
	}
	return model, nil
}

// pointInDetails reports whether a screen coordinate falls in the
// details pane.
func (model *Model) pointInDetails(x, y int) bool {
	if y < tabBarHeight || y >= model.height-statusBarHeight {
		return false
	}
	if model.layout == jj.LayoutVertical {
		listRows, _ := model.paneSizes()
		return y > tabBarHeight+listRows
	}
	return x > model.listWidth()
}
