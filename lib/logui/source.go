// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/tui"
)

// Snapshot is a point-in-time view of the repository: the revisions of
// the current revset plus the bookmark list and recent operations. All
// three load in one pass so the tabs never show views of different
// operations.
type Snapshot struct {
	Revisions  []jj.Revision
	Bookmarks  []jj.Bookmark
	Operations []jj.Operation
}

// snapshotMsg delivers a loaded snapshot (or the load error) to the
// model.
type snapshotMsg struct {
	Snapshot Snapshot
	Err      error
}

// showLoadedMsg delivers one rendered `jj show` document.
type showLoadedMsg struct {
	Key  ShowKey
	Text *tui.LargeText
	Err  error
}

// repoChangedMsg signals that the repository's operation heads moved
// (another jj invocation, a different workspace, a git push). The
// model responds by reloading the snapshot.
type repoChangedMsg struct{}

// commandDoneMsg reports the outcome of a mutating jj command. Output
// carries the command's combined output for the message popup (fetch
// and push print remote results worth showing); most mutations leave
// it empty.
type commandDoneMsg struct {
	Title  string
	Output string
	Err    error
}

// loadTimeout bounds every jj invocation issued by the source. jj is
// local and normally answers in milliseconds; a hang here means a
// stuck watchman or a dead network filesystem, and the UI must not
// hang with it.
const loadTimeout = 30 * time.Second

// oplogLimit is how many operations the oplog tab loads.
const oplogLimit = 100

// Source loads repository data for the model. Every method returns a
// tea.Cmd that runs on a background goroutine and delivers its result
// as a message, keeping the update loop free of blocking jj calls.
type Source struct {
	env    *jj.Env
	logger *slog.Logger
}

// NewSource creates a source over a resolved jj environment.
func NewSource(env *jj.Env, logger *slog.Logger) *Source {
	return &Source{env: env, logger: logger}
}

// LoadSnapshot loads revisions, bookmarks, and the oplog in one
// command. Revset errors surface via snapshotMsg.Err; bookmark and
// oplog failures degrade to empty lists with a log record, because a
// broken bookmark listing should not blank the log tab.
func (source *Source) LoadSnapshot(revset string) tea.Cmd {
	runner := source.env.Runner()
	logger := source.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		revisions, err := runner.Log(ctx, revset)
		if err != nil {
			return snapshotMsg{Err: err}
		}

		bookmarks, err := runner.Bookmarks(ctx)
		if err != nil {
			logger.Warn("bookmark listing failed", "error", err)
		}
		operations, err := runner.OpLog(ctx, oplogLimit)
		if err != nil {
			logger.Warn("operation log failed", "error", err)
		}

		return snapshotMsg{Snapshot: Snapshot{
			Revisions:  revisions,
			Bookmarks:  bookmarks,
			Operations: operations,
		}}
	}
}

// LoadShow renders one commit's details in the requested format.
func (source *Source) LoadShow(key ShowKey, tool string) tea.Cmd {
	runner := source.env.Runner()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		output, err := runner.Show(ctx, string(key.Head.CommitID), key.Format, tool, key.Width)
		if err != nil {
			return showLoadedMsg{Key: key, Err: err}
		}
		return showLoadedMsg{Key: key, Text: tui.NewLargeText(output)}
	}
}

// WaitForChange blocks on the watcher's event channel and converts the
// next event into a repoChangedMsg. The model re-issues this command
// after each delivery; a closed channel (watcher shut down) ends the
// cycle by returning nil.
func (source *Source) WaitForChange(watcher *jj.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, open := <-watcher.Events(); !open {
			return nil
		}
		return repoChangedMsg{}
	}
}

// mutate wraps a mutating jj call as a command.
func (source *Source) mutate(title string, call func(ctx context.Context, runner *jj.Runner) (string, error)) tea.Cmd {
	runner := source.env.Runner()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		output, err := call(ctx, runner)
		return commandDoneMsg{Title: title, Output: output, Err: err}
	}
}

// New creates a new change on top of the given revision.
func (source *Source) New(rev string) tea.Cmd {
	return source.mutate("jj new", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.New(ctx, rev)
	})
}

// Edit makes the given revision the working copy.
func (source *Source) Edit(rev string) tea.Cmd {
	return source.mutate("jj edit", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.Edit(ctx, rev)
	})
}

// Describe sets a revision's description.
func (source *Source) Describe(rev, message string) tea.Cmd {
	return source.mutate("jj describe", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.Describe(ctx, rev, message)
	})
}

// Abandon abandons a revision.
func (source *Source) Abandon(rev string) tea.Cmd {
	return source.mutate("jj abandon", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.Abandon(ctx, rev)
	})
}

// Squash squashes a revision into its parent.
func (source *Source) Squash(rev string) tea.Cmd {
	return source.mutate("jj squash", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.Squash(ctx, rev)
	})
}

// Undo undoes the latest operation.
func (source *Source) Undo() tea.Cmd {
	return source.mutate("jj undo", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return runner.Undo(ctx)
	})
}

// SetBookmark points a bookmark at a revision, creating it if needed.
func (source *Source) SetBookmark(name, rev string) tea.Cmd {
	return source.mutate("jj bookmark set", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.BookmarkSet(ctx, name, rev)
	})
}

// DeleteBookmark deletes a bookmark (propagating on next push).
func (source *Source) DeleteBookmark(name string) tea.Cmd {
	return source.mutate("jj bookmark delete", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.BookmarkDelete(ctx, name)
	})
}

// ForgetBookmark forgets a bookmark without propagating the deletion.
func (source *Source) ForgetBookmark(name string) tea.Cmd {
	return source.mutate("jj bookmark forget", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.BookmarkForget(ctx, name)
	})
}

// Fetch fetches from all git remotes.
func (source *Source) Fetch() tea.Cmd {
	return source.mutate("jj git fetch", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return runner.GitFetch(ctx)
	})
}

// Push pushes one bookmark to its remote.
func (source *Source) Push(bookmark string, allowNew bool) tea.Cmd {
	return source.mutate("jj git push", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return runner.GitPush(ctx, bookmark, allowNew)
	})
}

// PushChange pushes a revision under a bookmark named by the
// configured bookmark template.
func (source *Source) PushChange(rev string) tea.Cmd {
	template := source.env.Config.BookmarkTemplate()
	return source.mutate("jj git push", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return runner.GitPushChange(ctx, rev, template)
	})
}

// RestoreOperation restores the repository to a previous operation.
func (source *Source) RestoreOperation(operationID string) tea.Cmd {
	return source.mutate("jj op restore", func(ctx context.Context, runner *jj.Runner) (string, error) {
		return "", runner.OpRestore(ctx, operationID)
	})
}
