// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"fmt"
	"strings"
)

// Field and record separators for machine-readable templates. ASCII
// unit/record separators cannot appear in ids, names, or single-line
// descriptions, so no escaping is needed.
const (
	fieldSeparator  = "\x1f"
	recordSeparator = "\x1e"
)

// revisionTemplate extracts everything the log list renders. The
// shortest() calls give the unique id prefix jj highlights; the full
// ids key caches and mutations. concat() rather than separate():
// separate() drops empty contents together with their separator,
// which would shift every field after an empty description or an
// unset flag. concat() emits each separator unconditionally.
const revisionTemplate = `concat(
  change_id, "` + fieldSeparator + `",
  change_id.shortest(8).prefix(), "` + fieldSeparator + `",
  change_id.shortest(8).rest(), "` + fieldSeparator + `",
  commit_id, "` + fieldSeparator + `",
  commit_id.shortest(8).prefix(), "` + fieldSeparator + `",
  commit_id.shortest(8).rest(), "` + fieldSeparator + `",
  description.first_line(), "` + fieldSeparator + `",
  author.name(), "` + fieldSeparator + `",
  author.email(), "` + fieldSeparator + `",
  committer.timestamp().format("%Y-%m-%d %H:%M:%S"), "` + fieldSeparator + `",
  bookmarks.join(","), "` + fieldSeparator + `",
  if(current_working_copy, "w", ""), "` + fieldSeparator + `",
  if(immutable, "i", ""), "` + fieldSeparator + `",
  if(conflict, "c", ""), "` + fieldSeparator + `",
  if(empty, "e", ""), "` + fieldSeparator + `",
  if(divergent, "d", ""), "` + fieldSeparator + `",
  if(root, "r", ""), "` + recordSeparator + `"
)`

const revisionFieldCount = 17

// Revision is one row of the log view.
type Revision struct {
	ChangeID ChangeID
	// ChangeIDPrefix is the shortest unique prefix of the change id;
	// ChangeIDRest pads it to eight characters. The list renders the
	// prefix bright and the rest dim, like jj's own log output.
	ChangeIDPrefix string
	ChangeIDRest   string

	CommitID       CommitID
	CommitIDPrefix string
	CommitIDRest   string

	// Description is the first line of the description. Empty for
	// undescribed changes.
	Description string

	AuthorName  string
	AuthorEmail string
	Timestamp   string

	// Bookmarks holds local and tracked remote bookmark names
	// pointing at this revision.
	Bookmarks []string

	WorkingCopy bool
	Immutable   bool
	Conflict    bool
	Empty       bool
	Divergent   bool
	Root        bool
}

// Head returns the revision's change/commit pair.
func (revision Revision) Head() Head {
	return Head{ChangeID: revision.ChangeID, CommitID: revision.CommitID}
}

// Log returns the revisions selected by revset, most recent first
// (jj's own log order). An empty revset uses jj's configured default.
func (r *Runner) Log(ctx context.Context, revset string) ([]Revision, error) {
	args := []string{"log", "--no-graph", "-T", revisionTemplate}
	if revset != "" {
		args = append(args, "-r", revset)
	}
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseRevisions(output)
}

// ParseRevisions parses the output of the revision template into
// Revision records.
func ParseRevisions(output string) ([]Revision, error) {
	var revisions []Revision
	for _, record := range strings.Split(output, recordSeparator) {
		record = strings.TrimLeft(record, "\r\n")
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSeparator)
		if len(fields) != revisionFieldCount {
			return nil, fmt.Errorf("malformed log record: %d fields, want %d", len(fields), revisionFieldCount)
		}

		var bookmarks []string
		if fields[10] != "" {
			bookmarks = strings.Split(fields[10], ",")
		}

		revisions = append(revisions, Revision{
			ChangeID:       ChangeID(fields[0]),
			ChangeIDPrefix: fields[1],
			ChangeIDRest:   fields[2],
			CommitID:       CommitID(fields[3]),
			CommitIDPrefix: fields[4],
			CommitIDRest:   fields[5],
			Description:    fields[6],
			AuthorName:     fields[7],
			AuthorEmail:    fields[8],
			Timestamp:      fields[9],
			Bookmarks:      bookmarks,
			WorkingCopy:    fields[11] != "",
			Immutable:      fields[12] != "",
			Conflict:       fields[13] != "",
			Empty:          fields[14] != "",
			Divergent:      fields[15] != "",
			Root:           fields[16] != "",
		})
	}
	return revisions, nil
}

// Heads extracts the Head of every revision, in order. The show cache
// uses this to mark which commits are active.
func Heads(revisions []Revision) []Head {
	heads := make([]Head, len(revisions))
	for index, revision := range revisions {
		heads[index] = revision.Head()
	}
	return heads
}
