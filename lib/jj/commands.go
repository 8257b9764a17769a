// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Show returns the rendered contents of a revision (description plus
// diff) with ANSI color, in the given diff format. For DiffTool the
// panel width is exported via COLUMNS so the tool can size its output;
// other formats ignore width.
func (r *Runner) Show(ctx context.Context, rev string, format DiffFormat, tool string, width int) (string, error) {
	args := []string{"show", rev}
	switch format {
	case DiffGit:
		args = append(args, "--git")
	case DiffSummary:
		args = append(args, "--summary")
	case DiffStat:
		args = append(args, "--stat")
	case DiffTool:
		if tool != "" {
			args = append(args, "--tool", tool)
		}
	default:
		args = append(args, "--color-words")
	}

	if format != DiffTool {
		return r.RunColor(ctx, args...)
	}

	command := r.Command(ctx, args...)
	command.Env = append(command.Environ(), "COLUMNS="+strconv.Itoa(width))
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return "", fmt.Errorf("jj %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), r.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// FileChange is one entry of a revision's diff summary.
type FileChange struct {
	// Status is jj's single-letter summary status: M (modified),
	// A (added), D (deleted), R (renamed), C (copied).
	Status string
	Path   string
}

// DiffSummary lists the files a revision changes.
func (r *Runner) DiffSummary(ctx context.Context, rev string) ([]FileChange, error) {
	output, err := r.Run(ctx, "diff", "-r", rev, "--summary")
	if err != nil {
		return nil, err
	}
	var changes []FileChange
	for line := range strings.Lines(output) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		status, path, found := strings.Cut(line, " ")
		if !found {
			return nil, fmt.Errorf("malformed diff summary line: %q", line)
		}
		changes = append(changes, FileChange{Status: status, Path: path})
	}
	return changes, nil
}

// FileDiff returns the colored diff of a single file in a revision.
func (r *Runner) FileDiff(ctx context.Context, rev, path string, format DiffFormat) (string, error) {
	args := []string{"diff", "-r", rev}
	if format == DiffGit {
		args = append(args, "--git")
	} else {
		args = append(args, "--color-words")
	}
	args = append(args, "--", path)
	return r.RunColor(ctx, args...)
}

// FileShow returns the contents of a file at a revision, uncolored.
// Callers apply their own syntax highlighting.
func (r *Runner) FileShow(ctx context.Context, rev, path string) (string, error) {
	return r.Run(ctx, "file", "show", "-r", rev, "--", path)
}

// New creates a child change of rev and edits it.
func (r *Runner) New(ctx context.Context, rev string) error {
	_, err := r.Run(ctx, "new", rev)
	return err
}

// Edit makes rev the working-copy change.
func (r *Runner) Edit(ctx context.Context, rev string) error {
	_, err := r.Run(ctx, "edit", rev)
	return err
}

// Describe sets the full description of rev.
func (r *Runner) Describe(ctx context.Context, rev, message string) error {
	_, err := r.Run(ctx, "describe", "-r", rev, "-m", message)
	return err
}

// Abandon abandons rev, rebasing descendants onto its parents.
func (r *Runner) Abandon(ctx context.Context, rev string) error {
	_, err := r.Run(ctx, "abandon", rev)
	return err
}

// Squash moves rev's changes into its parent.
func (r *Runner) Squash(ctx context.Context, rev string) error {
	_, err := r.Run(ctx, "squash", "-r", rev)
	return err
}

// Undo undoes the latest repository operation and reports jj's
// description of what was undone.
func (r *Runner) Undo(ctx context.Context) (string, error) {
	return r.RunCombined(ctx, "undo")
}

// bookmarkTemplate extracts bookmark rows. A bookmark that only exists
// remotely has present=false and no target. concat() keeps the empty
// remote field of local bookmarks in place; separate() would swallow
// it along with its separator.
const bookmarkTemplate = `concat(
  name, "` + fieldSeparator + `",
  remote, "` + fieldSeparator + `",
  if(present, normal_target.change_id, ""), "` + fieldSeparator + `",
  if(present, normal_target.commit_id, ""), "` + fieldSeparator + `",
  if(conflict, "c", ""), "` + recordSeparator + `"
)`

const bookmarkFieldCount = 5

// Bookmark is one local or remote bookmark.
type Bookmark struct {
	Name string
	// Remote is empty for the local bookmark, or the remote name for
	// a remote-tracking bookmark.
	Remote   string
	ChangeID ChangeID
	CommitID CommitID
	Conflict bool
}

// Display returns the name as jj renders it: "name" for local
// bookmarks, "name@remote" for remote ones.
func (bookmark Bookmark) Display() string {
	if bookmark.Remote == "" {
		return bookmark.Name
	}
	return bookmark.Name + "@" + bookmark.Remote
}

// Bookmarks lists all bookmarks, local and remote.
func (r *Runner) Bookmarks(ctx context.Context) ([]Bookmark, error) {
	output, err := r.Run(ctx, "bookmark", "list", "--all-remotes", "-T", bookmarkTemplate)
	if err != nil {
		return nil, err
	}
	var bookmarks []Bookmark
	for _, record := range strings.Split(output, recordSeparator) {
		record = strings.TrimLeft(record, "\r\n")
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSeparator)
		if len(fields) != bookmarkFieldCount {
			return nil, fmt.Errorf("malformed bookmark record: %d fields, want %d", len(fields), bookmarkFieldCount)
		}
		bookmarks = append(bookmarks, Bookmark{
			Name:     fields[0],
			Remote:   fields[1],
			ChangeID: ChangeID(fields[2]),
			CommitID: CommitID(fields[3]),
			Conflict: fields[4] != "",
		})
	}
	return bookmarks, nil
}

// BookmarkSet creates or moves a local bookmark to rev.
func (r *Runner) BookmarkSet(ctx context.Context, name, rev string) error {
	_, err := r.Run(ctx, "bookmark", "set", name, "-r", rev, "--allow-backwards")
	return err
}

// BookmarkDelete deletes a local bookmark; the deletion propagates to
// remotes on the next push.
func (r *Runner) BookmarkDelete(ctx context.Context, name string) error {
	_, err := r.Run(ctx, "bookmark", "delete", name)
	return err
}

// BookmarkForget forgets a bookmark locally without scheduling a
// remote deletion.
func (r *Runner) BookmarkForget(ctx context.Context, name string) error {
	_, err := r.Run(ctx, "bookmark", "forget", name)
	return err
}

// GitFetch fetches from the default remotes and returns jj's progress
// output.
func (r *Runner) GitFetch(ctx context.Context) (string, error) {
	return r.RunCombined(ctx, "git", "fetch")
}

// GitPush pushes bookmarks to the default remote. With a bookmark
// name, only that bookmark is pushed; allowNew permits creating it on
// the remote. Returns jj's progress output.
func (r *Runner) GitPush(ctx context.Context, bookmark string, allowNew bool) (string, error) {
	args := []string{"git", "push"}
	if bookmark != "" {
		args = append(args, "--bookmark", bookmark)
	}
	if allowNew {
		args = append(args, "--allow-new")
	}
	return r.RunCombined(ctx, args...)
}

// GitPushChange pushes a single change, creating a bookmark for it
// named by bookmarkTemplate. jj names --change bookmarks via its
// templates.git_push_bookmark setting, so the template is injected as
// a --config override; empty means jj's own configuration applies.
// Returns jj's progress output.
func (r *Runner) GitPushChange(ctx context.Context, rev, bookmarkTemplate string) (string, error) {
	args := []string{"git", "push", "--change", rev}
	if bookmarkTemplate != "" {
		args = append(args, "--config", "templates.git_push_bookmark="+bookmarkTemplate)
	}
	return r.RunCombined(ctx, args...)
}

// operationTemplate extracts op log rows. concat() so an empty
// description still emits its separator.
const operationTemplate = `concat(
  id.short(12), "` + fieldSeparator + `",
  description, "` + fieldSeparator + `",
  user, "` + fieldSeparator + `",
  time.end().format("%Y-%m-%d %H:%M:%S"), "` + recordSeparator + `"
)`

const operationFieldCount = 4

// Operation is one entry of the operation log.
type Operation struct {
	ID          string
	Description string
	User        string
	Time        string
}

// OpLog returns the most recent limit operations, newest first. A
// limit of 0 returns everything.
func (r *Runner) OpLog(ctx context.Context, limit int) ([]Operation, error) {
	args := []string{"op", "log", "--no-graph", "-T", operationTemplate}
	if limit > 0 {
		args = append(args, "--limit", strconv.Itoa(limit))
	}
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	var operations []Operation
	for _, record := range strings.Split(output, recordSeparator) {
		record = strings.TrimLeft(record, "\r\n")
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSeparator)
		if len(fields) != operationFieldCount {
			return nil, fmt.Errorf("malformed op log record: %d fields, want %d", len(fields), operationFieldCount)
		}
		operations = append(operations, Operation{
			ID:          fields[0],
			Description: fields[1],
			User:        fields[2],
			Time:        fields[3],
		})
	}
	return operations, nil
}

// OpRestore restores the repository to the state as of the given
// operation.
func (r *Runner) OpRestore(ctx context.Context, operationID string) error {
	_, err := r.Run(ctx, "op", "restore", operationID)
	return err
}
