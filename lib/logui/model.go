// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/state"
	"github.com/blazingjj/blazingjj/lib/tui"
)

// Tab identifies the active list tab.
type Tab int

const (
	// TabLog shows the revisions of the current revset.
	TabLog Tab = iota
	// TabBookmarks shows local and remote bookmarks.
	TabBookmarks
	// TabOplog shows the operation log.
	TabOplog
)

func (tab Tab) String() string {
	switch tab {
	case TabBookmarks:
		return "bookmarks"
	case TabOplog:
		return "oplog"
	default:
		return "log"
	}
}

func parseTab(name string) Tab {
	switch name {
	case "bookmarks":
		return TabBookmarks
	case "oplog":
		return TabOplog
	default:
		return TabLog
	}
}

// focusRegion identifies which pane receives navigation keys.
type focusRegion int

const (
	focusList focusRegion = iota
	focusDetails
)

// textPurpose identifies what an open text modal edits.
type textPurpose int

const (
	textDescribe textPurpose = iota
	textRevset
	textBookmarkName
)

// confirmAction pairs a pending confirm dialog with the command to run
// on Yes.
type confirmAction struct {
	dialog  tui.ConfirmDialog
	command tea.Cmd
}

// filteredRevision is one fuzzy-filter hit: the index into the
// snapshot's revisions plus the matched rune positions in the
// description.
type filteredRevision struct {
	Index     int
	Score     int
	Positions []int
}

// chrome heights: tab bar on top, status bar at the bottom.
const (
	tabBarHeight    = 1
	statusBarHeight = 1
)

// Options configures a Model.
type Options struct {
	Env     *jj.Env
	Source  *Source
	Watcher *jj.Watcher // nil disables live refresh
	Theme   tui.Theme
	Logger  *slog.Logger

	// Restored is the persisted UI state from the previous session.
	Restored state.State

	// LayoutOverride forces the layout from the application config
	// ("horizontal" or "vertical"); empty defers to the jj setting.
	LayoutOverride string
}

// Model is the bubbletea model for the blazingjj TUI.
type Model struct {
	env     *jj.Env
	source  *Source
	watcher *jj.Watcher
	logger  *slog.Logger
	theme   tui.Theme
	keymap  KeyMap

	width  int
	height int

	layout        jj.Layout
	layoutPercent int
	focus         focusRegion
	tab           Tab

	snapshot        Snapshot
	snapshotErr     error
	loadingSnapshot bool

	revset string

	filterEditing bool
	filterInput   string
	filtered      []filteredRevision
	slab          *util.Slab

	// Cursor per tab, so switching tabs keeps positions.
	cursorLog       int
	cursorBookmarks int
	cursorOplog     int
	listTop         int

	selectedChange jj.ChangeID

	diffFormat     jj.DiffFormat
	diffTool       string
	toolConfigured bool

	cache    *ShowCache
	inFlight map[ShowKey]bool
	details  DetailsPanel

	textModal   *tui.TextModal
	textPurpose textPurpose
	textTarget  string
	dropdown    *tui.DropdownOverlay
	confirm     *confirmAction
	popup       *tui.MessagePopup
	helpOpen    bool

	notice      string
	noticeLevel slog.Level

	quitting bool
}

// NewModel builds the model from a resolved environment and restored
// state.
func NewModel(options Options) *Model {
	configuration := options.Env.Config

	keymap := DefaultKeyMap
	if unknown := keymap.ApplyConfig(configuration.Keybinds()); len(unknown) > 0 {
		options.Logger.Warn("unknown keybind actions in config", "actions", strings.Join(unknown, ","))
	}

	layout := configuration.Layout()
	switch options.LayoutOverride {
	case "horizontal":
		layout = jj.LayoutHorizontal
	case "vertical":
		layout = jj.LayoutVertical
	}

	layoutPercent := configuration.LayoutPercent()
	if options.Restored.LayoutPercent >= 10 && options.Restored.LayoutPercent <= 90 {
		layoutPercent = options.Restored.LayoutPercent
	}

	diffFormat := configuration.DiffFormat()
	if restored, ok := jj.ParseDiffFormat(options.Restored.DiffFormat); ok && options.Restored.DiffFormat != "" {
		diffFormat = restored
	}
	diffTool, toolConfigured := configuration.DiffTool()
	if diffFormat == jj.DiffTool && !toolConfigured {
		diffFormat = jj.DiffColorWords
	}

	revset := options.Env.DefaultRevset
	if revset == "" {
		revset = options.Restored.Revset
	}

	details := NewDetailsPanel(options.Theme)
	details.SetWrap(options.Restored.Wrap)

	return &Model{
		env:             options.Env,
		source:          options.Source,
		watcher:         options.Watcher,
		logger:          options.Logger,
		theme:           options.Theme,
		keymap:          keymap,
		layout:          layout,
		layoutPercent:   layoutPercent,
		tab:             parseTab(options.Restored.Tab),
		revset:          revset,
		slab:            util.MakeSlab(100*1024, 2048),
		diffFormat:      diffFormat,
		diffTool:        diffTool,
		toolConfigured:  toolConfigured,
		cache:           NewShowCache(),
		inFlight:        make(map[ShowKey]bool),
		details:         details,
		loadingSnapshot: true,
	}
}

// Init starts the first snapshot load and arms the repository watcher.
func (model *Model) Init() tea.Cmd {
	commands := []tea.Cmd{model.source.LoadSnapshot(model.revset)}
	if model.watcher != nil {
		commands = append(commands, model.source.WaitForChange(model.watcher))
	}
	return tea.Batch(commands...)
}

// Update is the bubbletea message dispatcher.
func (model *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.details.SetSize(model.detailsSize())
		return model, model.ensureShow()

	case tea.KeyMsg:
		return model.updateKey(message)

	case tea.MouseMsg:
		return model.updateMouse(message)

	case snapshotMsg:
		return model.updateSnapshot(message)

	case showLoadedMsg:
		delete(model.inFlight, message.Key)
		if message.Err != nil {
			model.logger.Warn("show failed", "commit", string(message.Key.Head.CommitID), "error", message.Err)
			return model, nil
		}
		model.cache.Insert(message.Key, message.Text)
		if key, selected := model.currentShowKey(); selected && key == message.Key {
			model.details.SetDocument(message.Text, false)
		}
		return model, nil

	case describeLoadedMsg:
		if message.Err != nil {
			model.logger.Warn("description load failed", "error", message.Err)
			return model, nil
		}
		modal := tui.NewTextModal(model.theme, "Describe "+message.Rev[:8], message.Description)
		model.textModal = modal
		model.textPurpose = textDescribe
		model.textTarget = message.Rev
		return model, nil

	case fileListMsg:
		if message.Err != nil {
			model.logger.Warn("file list failed", "error", message.Err)
			return model, nil
		}
		model.openFileDropdown(message.Rev, message.Files)
		return model, nil

	case filePreviewMsg:
		if message.Err != nil {
			model.logger.Warn("file preview failed", "path", message.Path, "error", message.Err)
			return model, nil
		}
		// The preview replaces the show document until the selection
		// moves; ensureShow restores the commit view afterwards.
		model.details.SetDocument(message.Text, false)
		model.focus = focusDetails
		return model, nil

	case repoChangedMsg:
		commands := []tea.Cmd{model.source.LoadSnapshot(model.revset)}
		if model.watcher != nil {
			commands = append(commands, model.source.WaitForChange(model.watcher))
		}
		model.loadingSnapshot = true
		return model, tea.Batch(commands...)

	case commandDoneMsg:
		if message.Err != nil {
			model.logger.Error(message.Title+" failed", "error", message.Err)
			return model, model.source.LoadSnapshot(model.revset)
		}
		if message.Output != "" {
			model.popup = &tui.MessagePopup{Title: message.Title, Text: message.Output}
		}
		model.loadingSnapshot = true
		return model, model.source.LoadSnapshot(model.revset)

	case logNoticeMsg:
		model.notice = message.Summary
		model.noticeLevel = message.Level
		return model, tea.Tick(logNoticeFadeDelay, func(time.Time) tea.Msg {
			return logNoticeFadeMsg{}
		})

	case logNoticeFadeMsg:
		model.notice = ""
		return model, nil
	}

	return model, nil
}

// updateSnapshot installs a loaded snapshot, keeping the selection on
// the same change where possible.
func (model *Model) updateSnapshot(message snapshotMsg) (tea.Model, tea.Cmd) {
	model.loadingSnapshot = false
	if message.Err != nil {
		model.snapshotErr = message.Err
		model.logger.Error("snapshot load failed", "error", message.Err)
		return model, nil
	}
	model.snapshotErr = nil
	model.snapshot = message.Snapshot
	model.cache.SetActive(jj.Heads(model.snapshot.Revisions))
	model.applyFilter()

	// Re-find the previously selected change in the new snapshot.
	if model.selectedChange != "" {
		for position, index := range model.visibleRevisionIndexes() {
			if model.snapshot.Revisions[index].ChangeID == model.selectedChange {
				model.cursorLog = position
				break
			}
		}
	}
	model.clampCursor()
	return model, model.ensureShow()
}

// --- selection helpers ---

// visibleRevisionIndexes returns the snapshot indexes shown on the log
// tab, honoring the active fuzzy filter.
func (model *Model) visibleRevisionIndexes() []int {
	if model.filterInput == "" {
		indexes := make([]int, len(model.snapshot.Revisions))
		for index := range indexes {
			indexes[index] = index
		}
		return indexes
	}
	indexes := make([]int, len(model.filtered))
	for position, hit := range model.filtered {
		indexes[position] = hit.Index
	}
	return indexes
}

func (model *Model) listLength() int {
	switch model.tab {
	case TabBookmarks:
		return len(model.snapshot.Bookmarks)
	case TabOplog:
		return len(model.snapshot.Operations)
	default:
		return len(model.visibleRevisionIndexes())
	}
}

func (model *Model) cursor() int {
	switch model.tab {
	case TabBookmarks:
		return model.cursorBookmarks
	case TabOplog:
		return model.cursorOplog
	default:
		return model.cursorLog
	}
}

func (model *Model) setCursor(cursor int) {
	switch model.tab {
	case TabBookmarks:
		model.cursorBookmarks = cursor
	case TabOplog:
		model.cursorOplog = cursor
	default:
		model.cursorLog = cursor
	}
}

func (model *Model) clampCursor() {
	length := model.listLength()
	cursor := model.cursor()
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	model.setCursor(cursor)
	model.scrollListToCursor()
}

// selectedRevision returns the revision under the cursor on the log
// tab.
func (model *Model) selectedRevision() (jj.Revision, bool) {
	indexes := model.visibleRevisionIndexes()
	if model.cursorLog < 0 || model.cursorLog >= len(indexes) {
		return jj.Revision{}, false
	}
	revision := model.snapshot.Revisions[indexes[model.cursorLog]]
	return revision, true
}

func (model *Model) selectedBookmark() (jj.Bookmark, bool) {
	if model.cursorBookmarks < 0 || model.cursorBookmarks >= len(model.snapshot.Bookmarks) {
		return jj.Bookmark{}, false
	}
	return model.snapshot.Bookmarks[model.cursorBookmarks], true
}

func (model *Model) selectedOperation() (jj.Operation, bool) {
	if model.cursorOplog < 0 || model.cursorOplog >= len(model.snapshot.Operations) {
		return jj.Operation{}, false
	}
	return model.snapshot.Operations[model.cursorOplog], true
}

// currentShowKey returns the cache key for the details panel's current
// subject.
func (model *Model) currentShowKey() (ShowKey, bool) {
	revision, selected := model.selectedRevision()
	if !selected {
		return ShowKey{}, false
	}
	_, detailsWidth := model.paneSizes()
	return NewShowKey(revision.Head(), model.diffFormat, detailsWidth), true
}

// ensureShow points the details panel at the selected revision's
// rendering, serving stale content from the cache and scheduling a
// load when needed.
func (model *Model) ensureShow() tea.Cmd {
	if model.tab != TabLog {
		return nil
	}
	revision, selected := model.selectedRevision()
	if !selected {
		model.details.Clear()
		return nil
	}
	model.selectedChange = revision.ChangeID

	key, _ := model.currentShowKey()
	document, stale := model.cache.Get(key)
	model.details.SetDocument(document, stale && document != nil)
	if !stale {
		return nil
	}
	model.details.SetLoading(true)
	if model.inFlight[key] {
		return nil
	}
	model.inFlight[key] = true
	return model.source.LoadShow(key, model.diffTool)
}

// --- filtering ---

// applyFilter recomputes the fuzzy filter hits over the snapshot's
// descriptions and bookmark names. Hits keep snapshot order so the
// filtered list still reads like the log.
func (model *Model) applyFilter() {
	model.filtered = model.filtered[:0]
	if model.filterInput == "" {
		return
	}
	pattern := []rune(model.filterInput)
	for index, revision := range model.snapshot.Revisions {
		line := revision.Description + " " + strings.Join(revision.Bookmarks, " ")
		result := tui.FuzzyMatch(line, pattern, model.slab)
		if result.Score <= 0 {
			continue
		}
		model.filtered = append(model.filtered, filteredRevision{
			Index:     index,
			Score:     result.Score,
			Positions: result.Positions,
		})
	}
}

// --- layout ---

// paneSizes returns the list pane's (rows, columns-available-to-details)
// split for the current layout.
func (model *Model) paneSizes() (listRows int, detailsWidth int) {
	bodyHeight := model.height - tabBarHeight - statusBarHeight
	if bodyHeight < 2 {
		bodyHeight = 2
	}
	if model.layout == jj.LayoutVertical {
		listRows = bodyHeight * model.layoutPercent / 100
		if listRows < 1 {
			listRows = 1
		}
		if listRows > bodyHeight-1 {
			listRows = bodyHeight - 1
		}
		return listRows, model.width
	}
	listWidth := model.width * model.layoutPercent / 100
	if listWidth < 20 {
		listWidth = 20
	}
	return bodyHeight, model.width - listWidth - 1
}

func (model *Model) listWidth() int {
	if model.layout == jj.LayoutVertical {
		return model.width
	}
	return model.width * model.layoutPercent / 100
}

// detailsSize returns the details panel dimensions.
func (model *Model) detailsSize() (width, height int) {
	bodyHeight := model.height - tabBarHeight - statusBarHeight
	if model.layout == jj.LayoutVertical {
		listRows, _ := model.paneSizes()
		return model.width, bodyHeight - listRows - 1
	}
	_, detailsWidth := model.paneSizes()
	return detailsWidth, bodyHeight
}

// listHeight is how many rows the list pane shows.
func (model *Model) listHeight() int {
	listRows, _ := model.paneSizes()
	return listRows
}

func (model *Model) scrollListToCursor() {
	height := model.listHeight()
	cursor := model.cursor()
	if cursor < model.listTop {
		model.listTop = cursor
	}
	if cursor >= model.listTop+height {
		model.listTop = cursor - height + 1
	}
	if model.listTop < 0 {
		model.listTop = 0
	}
}

// --- persistence ---

// persistState writes the session state; failures are logged, never
// fatal.
func (model *Model) persistState() {
	persisted := state.State{
		Revset:        model.revset,
		Tab:           model.tab.String(),
		LayoutPercent: model.layoutPercent,
		Wrap:          model.details.Wrap(),
		DiffFormat:    model.diffFormat.String(),
	}
	if err := state.Save(model.env.Root, persisted); err != nil {
		model.logger.Warn("state save failed", "error", err)
	}
}

// --- status bar / view ---

// View renders the whole screen.
func (model *Model) View() string {
	if model.quitting || model.width == 0 || model.height == 0 {
		return ""
	}

	var screen strings.Builder
	screen.WriteString(model.renderTabBar())
	screen.WriteString("\n")
	screen.WriteString(model.renderBody())
	screen.WriteString("\n")
	screen.WriteString(model.renderStatusBar())
	view := screen.String()

	if model.dropdown != nil {
		view = tui.SpliceOverlay(view, model.dropdown.Render(model.theme), model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	if model.textModal != nil {
		lines, anchorX, anchorY := model.textModal.Render(model.width, model.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	if model.confirm != nil {
		lines, anchorX, anchorY := model.confirm.dialog.Render(model.theme, model.width, model.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	if model.popup != nil {
		lines, anchorX, anchorY := model.popup.Render(model.theme, model.width, model.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	if model.helpOpen {
		lines, anchorX, anchorY := renderHelpOverlay(model.theme, model.width, model.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	}
	return view
}

func (model *Model) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Padding(0, 1)

	render := func(tab Tab, label string) string {
		if model.tab == tab {
			return activeStyle.Render(label)
		}
		return inactiveStyle.Render(label)
	}

	bar := render(TabLog, "1 Log") + render(TabBookmarks, "2 Bookmarks") + render(TabOplog, "3 Oplog")

	revsetLabel := model.revset
	if revsetLabel == "" {
		revsetLabel = "(default)"
	}
	suffix := lipgloss.NewStyle().Foreground(model.theme.FaintText).
		Render(" revset: " + revsetLabel)
	if model.filterInput != "" || model.filterEditing {
		suffix += lipgloss.NewStyle().Foreground(model.theme.NoticeInfo).
			Render("  filter: " + model.filterInput)
		if model.filterEditing {
			suffix += lipgloss.NewStyle().Reverse(true).Render(" ")
		}
	}
	if model.loadingSnapshot {
		suffix += lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  ⟳")
	}

	bar += suffix
	if remaining := model.width - lipgloss.Width(bar); remaining > 0 {
		bar += strings.Repeat(" ", remaining)
	}
	return bar
}

func (model *Model) renderBody() string {
	list := model.renderList()
	details := model.details.View(model.focus == focusDetails)

	if model.layout == jj.LayoutVertical {
		divider := lipgloss.NewStyle().
			Foreground(model.theme.BorderColor).
			Render(strings.Repeat("─", model.width))
		return list + "\n" + divider + "\n" + details
	}

	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render("│")
	listLines := strings.Split(list, "\n")
	detailLines := strings.Split(details, "\n")
	listWidth := model.listWidth()

	rows, _ := model.paneSizes()
	var body strings.Builder
	for row := 0; row < rows; row++ {
		left := ""
		if row < len(listLines) {
			left = listLines[row]
		}
		if remaining := listWidth - lipgloss.Width(left); remaining > 0 {
			left += strings.Repeat(" ", remaining)
		}
		body.WriteString(left)
		body.WriteString("\x1b[0m")
		body.WriteString(divider)
		if row < len(detailLines) {
			body.WriteString(detailLines[row])
		}
		if row < rows-1 {
			body.WriteString("\n")
		}
	}
	return body.String()
}

func (model *Model) renderList() string {
	height := model.listHeight()
	width := model.listWidth()
	renderer := NewListRenderer(model.theme, width)

	var rows []string
	switch model.tab {
	case TabBookmarks:
		for position := model.listTop; position < len(model.snapshot.Bookmarks) && len(rows) < height; position++ {
			rows = append(rows, renderer.RenderBookmark(model.snapshot.Bookmarks[position], position == model.cursorBookmarks))
		}
	case TabOplog:
		for position := model.listTop; position < len(model.snapshot.Operations) && len(rows) < height; position++ {
			rows = append(rows, renderer.RenderOperation(model.snapshot.Operations[position], position == model.cursorOplog))
		}
	default:
		indexes := model.visibleRevisionIndexes()
		for position := model.listTop; position < len(indexes) && len(rows) < height; position++ {
			var positions []int
			if model.filterInput != "" && position < len(model.filtered) {
				positions = model.filtered[position].Positions
			}
			rows = append(rows, renderer.RenderRevision(model.snapshot.Revisions[indexes[position]], position == model.cursorLog, positions))
		}
	}

	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (model *Model) renderStatusBar() string {
	if model.snapshotErr != nil {
		return lipgloss.NewStyle().
			Foreground(model.theme.NoticeError).
			Render("error: " + firstLine(model.snapshotErr.Error()))
	}
	if model.notice != "" {
		color := model.theme.NoticeInfo
		switch {
		case model.noticeLevel >= slog.LevelError:
			color = model.theme.NoticeError
		case model.noticeLevel >= slog.LevelWarn:
			color = model.theme.NoticeWarn
		}
		return lipgloss.NewStyle().Foreground(color).Render(firstLine(model.notice))
	}

	hints := []key.Binding{
		model.keymap.Describe, model.keymap.New, model.keymap.Squash,
		model.keymap.Bookmark, model.keymap.Push, model.keymap.Fetch,
		model.keymap.Undo, model.keymap.Help, model.keymap.Quit,
	}
	keyStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	descriptionStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	parts := make([]string, 0, len(hints))
	for _, hint := range hints {
		help := hint.Help()
		parts = append(parts, keyStyle.Render(help.Key)+descriptionStyle.Render(" "+help.Desc))
	}

	format := descriptionStyle.Render("diff: ") + keyStyle.Render(model.diffFormat.String())
	bar := strings.Join(parts, descriptionStyle.Render("  ")) + "  " + format
	if lipgloss.Width(bar) > model.width {
		bar = strings.Join(parts[:4], descriptionStyle.Render("  "))
	}
	return bar
}

func firstLine(text string) string {
	if index := strings.IndexByte(text, '\n'); index >= 0 {
		return text[:index]
	}
	return text
}
