// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/junegunn/fzf/src/util"

	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/tui"
)

func testRevision(change, commit, description string) jj.Revision {
	return jj.Revision{
		ChangeID:       jj.ChangeID(change),
		ChangeIDPrefix: change[:2],
		ChangeIDRest:   change[2:],
		CommitID:       jj.CommitID(commit),
		CommitIDPrefix: commit[:2],
		CommitIDRest:   commit[2:],
		Description:    description,
		AuthorName:     "alice",
		AuthorEmail:    "alice@example.com",
		Timestamp:      "2026-08-30 11:02:44",
	}
}

func testModel(t *testing.T, revisions []jj.Revision) *Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &jj.Env{Root: t.TempDir()}
	model := &Model{
		env:           env,
		source:        NewSource(env, logger),
		logger:        logger,
		theme:         tui.DefaultTheme,
		keymap:        DefaultKeyMap,
		layout:        jj.LayoutHorizontal,
		layoutPercent: 50,
		slab:          util.MakeSlab(100*1024, 2048),
		cache:         NewShowCache(),
		inFlight:      make(map[ShowKey]bool),
		details:       NewDetailsPanel(tui.DefaultTheme),
		width:         120,
		height:        40,
	}
	model.details.SetSize(model.detailsSize())
	model.snapshot = Snapshot{Revisions: revisions}
	model.cache.SetActive(jj.Heads(revisions))
	return model
}

func keyPress(character rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}}
}

func TestMoveCursorClamps(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
		testRevision("zzxvefgh", "bbbb2222", "second"),
	})

	model.moveCursor(-3)
	if model.cursorLog != 0 {
		t.Errorf("cursor above top = %d, want 0", model.cursorLog)
	}
	model.moveCursor(10)
	if model.cursorLog != 1 {
		t.Errorf("cursor past end = %d, want 1", model.cursorLog)
	}
}

func TestSnapshotKeepsSelectionByChangeID(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
		testRevision("zzxvefgh", "bbbb2222", "second"),
	})
	model.cursorLog = 1
	model.selectedChange = "zzxvefgh"

	// A new change appears on top; the commit of the selected change
	// was rewritten.
	model.updateSnapshot(snapshotMsg{Snapshot: Snapshot{Revisions: []jj.Revision{
		testRevision("mmnnoopp", "cccc3333", "new work"),
		testRevision("qqswabcd", "aaaa1111", "first"),
		testRevision("zzxvefgh", "dddd4444", "second, amended"),
	}}})

	if model.cursorLog != 2 {
		t.Errorf("cursor = %d, want 2 (selection follows change id)", model.cursorLog)
	}
}

func TestSnapshotSelectionGoneClampsCursor(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
		testRevision("zzxvefgh", "bbbb2222", "second"),
	})
	model.cursorLog = 1
	model.selectedChange = "zzxvefgh"

	model.updateSnapshot(snapshotMsg{Snapshot: Snapshot{Revisions: []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
	}}})

	if model.cursorLog != 0 {
		t.Errorf("cursor = %d, want 0 after selected change disappeared", model.cursorLog)
	}
}

func TestFilterNarrowsVisibleRevisions(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "fix watcher shutdown"),
		testRevision("zzxvefgh", "bbbb2222", "add bookmark dropdown"),
		testRevision("mmnnoopp", "cccc3333", "watcher coalescing"),
	})

	model.filterInput = "watcher"
	model.applyFilter()

	indexes := model.visibleRevisionIndexes()
	if len(indexes) != 2 {
		t.Fatalf("filtered to %d revisions, want 2", len(indexes))
	}
	for _, index := range indexes {
		if !strings.Contains(model.snapshot.Revisions[index].Description, "watcher") {
			t.Errorf("unexpected filter hit: %q", model.snapshot.Revisions[index].Description)
		}
	}

	model.filterInput = ""
	model.applyFilter()
	if got := len(model.visibleRevisionIndexes()); got != 3 {
		t.Errorf("cleared filter shows %d revisions, want 3", got)
	}
}

func TestSwitchTabClampsCursor(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
	})
	model.snapshot.Bookmarks = []jj.Bookmark{{Name: "main"}}
	model.cursorBookmarks = 5

	model.switchTab(TabBookmarks)
	if model.cursorBookmarks != 0 {
		t.Errorf("bookmark cursor = %d, want clamped to 0", model.cursorBookmarks)
	}
	if model.tab != TabBookmarks {
		t.Errorf("tab = %v, want bookmarks", model.tab)
	}
}

func TestAdjustSplitClamps(t *testing.T) {
	model := testModel(t, nil)

	for range 20 {
		model.adjustSplit(5)
	}
	if model.layoutPercent != 90 {
		t.Errorf("layoutPercent = %d, want 90", model.layoutPercent)
	}
	for range 40 {
		model.adjustSplit(-5)
	}
	if model.layoutPercent != 10 {
		t.Errorf("layoutPercent = %d, want 10", model.layoutPercent)
	}
}

func TestDiffFormatCycleKey(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
	})
	model.diffFormat = jj.DiffColorWords
	model.toolConfigured = false

	model.updateMainKey(keyPress('w'))
	if model.diffFormat != jj.DiffGit {
		t.Errorf("diffFormat = %v, want git", model.diffFormat)
	}
	model.updateMainKey(keyPress('w'))
	if model.diffFormat != jj.DiffColorWords {
		t.Errorf("diffFormat = %v, want color-words (no tool configured)", model.diffFormat)
	}
}

func TestAbandonOpensConfirmDialog(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
	})

	model.updateMainKey(keyPress('a'))
	if model.confirm == nil {
		t.Fatal("abandon did not open a confirm dialog")
	}
	if model.confirm.dialog.Yes {
		t.Error("confirm dialog must default to No")
	}

	// Escape cancels without running the command.
	model.updateKey(tea.KeyMsg{Type: tea.KeyEscape})
	if model.confirm != nil {
		t.Error("escape did not close the confirm dialog")
	}
}

func TestDescribeImmutableRevisionRefused(t *testing.T) {
	revision := testRevision("qqswabcd", "aaaa1111", "release v1.0")
	revision.Immutable = true
	model := testModel(t, []jj.Revision{revision})

	_, command := model.updateMainKey(keyPress('d'))
	if command != nil {
		t.Error("describe on an immutable revision must be refused")
	}
	if model.textModal != nil {
		t.Error("describe modal opened for an immutable revision")
	}
}

func TestHelpOverlayTogglesAndCapturesKeys(t *testing.T) {
	model := testModel(t, nil)

	model.updateKey(keyPress('?'))
	if !model.helpOpen {
		t.Fatal("? did not open help")
	}
	// Any key closes help without being interpreted.
	model.updateKey(keyPress('a'))
	if model.helpOpen {
		t.Error("key press did not close help")
	}
	if model.confirm != nil {
		t.Error("key press leaked through the help overlay")
	}
}

func TestShowLoadedUpdatesDetailsOnlyForCurrentKey(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
		testRevision("zzxvefgh", "bbbb2222", "second"),
	})
	model.ensureShow()

	currentKey, selected := model.currentShowKey()
	if !selected {
		t.Fatal("no current show key")
	}

	// A load for a different revision lands: cached but not displayed.
	otherKey := NewShowKey(jj.Head{ChangeID: "zzxvefgh", CommitID: "bbbb2222"}, model.diffFormat, 0)
	model.Update(showLoadedMsg{Key: otherKey, Text: tui.NewLargeText("other")})
	if model.details.TotalLines() != 0 {
		t.Error("details showed a document for a non-selected revision")
	}

	model.Update(showLoadedMsg{Key: currentKey, Text: tui.NewLargeText("current\ncontent\n")})
	if model.details.TotalLines() != 2 {
		t.Errorf("details TotalLines = %d, want 2", model.details.TotalLines())
	}
}

func TestViewRendersWithoutPanicAtSmallSizes(t *testing.T) {
	model := testModel(t, []jj.Revision{
		testRevision("qqswabcd", "aaaa1111", "first"),
	})
	for _, size := range [][2]int{{10, 4}, {40, 10}, {200, 60}} {
		model.Update(tea.WindowSizeMsg{Width: size[0], Height: size[1]})
		if view := model.View(); view == "" {
			t.Errorf("empty view at %dx%d", size[0], size[1])
		}
	}
}
