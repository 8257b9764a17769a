// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"strings"
	"testing"

	"github.com/blazingjj/blazingjj/lib/testutil"
)

func TestDiffSummary_Parse(t *testing.T) {
	testutil.StubBinary(t, "jj", `
printf 'M lib/jj/runner.go\n'
printf 'A lib/jj/watcher.go\n'
printf 'D old/dead.go\n'`)

	runner := NewRunner("jj", "/tmp")
	changes, err := runner.DiffSummary(context.Background(), "@")
	if err != nil {
		t.Fatalf("DiffSummary: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("len(changes) = %d, want 3", len(changes))
	}
	if changes[0].Status != "M" || changes[0].Path != "lib/jj/runner.go" {
		t.Errorf("changes[0] = %+v", changes[0])
	}
	if changes[2].Status != "D" || changes[2].Path != "old/dead.go" {
		t.Errorf("changes[2] = %+v", changes[2])
	}
}

func TestBookmarks_Parse(t *testing.T) {
	testutil.StubBinary(t, "jj",
		`printf 'main\037\037kxxswlpr\0375afe8cbd\037\036main\037origin\037kxxswlpr\0375afe8cbd\037\036'`)

	runner := NewRunner("jj", "/tmp")
	bookmarks, err := runner.Bookmarks(context.Background())
	if err != nil {
		t.Fatalf("Bookmarks: %v", err)
	}
	if len(bookmarks) != 2 {
		t.Fatalf("len(bookmarks) = %d, want 2", len(bookmarks))
	}
	if bookmarks[0].Display() != "main" {
		t.Errorf("bookmarks[0].Display() = %q, want main", bookmarks[0].Display())
	}
	if bookmarks[1].Display() != "main@origin" {
		t.Errorf("bookmarks[1].Display() = %q, want main@origin", bookmarks[1].Display())
	}
	if bookmarks[1].ChangeID != "kxxswlpr" || bookmarks[1].CommitID != "5afe8cbd" {
		t.Errorf("bookmarks[1] target = %+v", bookmarks[1])
	}
}

func TestOpLog_Parse(t *testing.T) {
	testutil.StubBinary(t, "jj",
		`printf 'b51416386f26\037squash commits into 5afe\037ada@host\0372026-08-30 10:15:00\036'`)

	runner := NewRunner("jj", "/tmp")
	operations, err := runner.OpLog(context.Background(), 50)
	if err != nil {
		t.Fatalf("OpLog: %v", err)
	}
	if len(operations) != 1 {
		t.Fatalf("len(operations) = %d, want 1", len(operations))
	}
	operation := operations[0]
	if operation.ID != "b51416386f26" {
		t.Errorf("ID = %q", operation.ID)
	}
	if operation.Description != "squash commits into 5afe" {
		t.Errorf("Description = %q", operation.Description)
	}
	if operation.User != "ada@host" {
		t.Errorf("User = %q", operation.User)
	}
}

func TestShow_FormatFlags(t *testing.T) {
	testutil.StubBinary(t, "jj", `echo "args: $@"`)

	runner := NewRunner("jj", "/tmp")

	output, err := runner.Show(context.Background(), "@", DiffGit, "", 0)
	if err != nil {
		t.Fatalf("Show(git): %v", err)
	}
	if !strings.Contains(output, "--git") {
		t.Errorf("git format args = %q, want --git", output)
	}

	output, err = runner.Show(context.Background(), "@", DiffColorWords, "", 0)
	if err != nil {
		t.Fatalf("Show(color-words): %v", err)
	}
	if !strings.Contains(output, "--color-words") {
		t.Errorf("color-words args = %q, want --color-words", output)
	}
}

func TestShow_DiffToolExportsColumns(t *testing.T) {
	testutil.StubBinary(t, "jj", `echo "columns: $COLUMNS tool-args: $@"`)

	runner := NewRunner("jj", "/tmp")
	output, err := runner.Show(context.Background(), "@", DiffTool, "difft", 119)
	if err != nil {
		t.Fatalf("Show(tool): %v", err)
	}
	if !strings.Contains(output, "columns: 119") {
		t.Errorf("output = %q, want COLUMNS=119 exported", output)
	}
	if !strings.Contains(output, "--tool difft") {
		t.Errorf("output = %q, want --tool difft", output)
	}
}

func TestBookmarkAndOperationTemplatesEmitAllSeparators(t *testing.T) {
	t.Parallel()

	templates := []struct {
		name     string
		template string
		fields   int
	}{
		{"bookmark", bookmarkTemplate, bookmarkFieldCount},
		{"operation", operationTemplate, operationFieldCount},
	}
	for _, entry := range templates {
		if strings.Contains(entry.template, "separate(") {
			t.Errorf("%s template uses separate(), which drops empty fields", entry.name)
		}
		if got := strings.Count(entry.template, fieldSeparator); got != entry.fields-1 {
			t.Errorf("%s template emits %d field separators, want %d", entry.name, got, entry.fields-1)
		}
		if got := strings.Count(entry.template, recordSeparator); got != 1 {
			t.Errorf("%s template emits %d record separators, want 1", entry.name, got)
		}
	}
}

func TestLogRejectsRecordWithMissingFields(t *testing.T) {
	// The output shape a separator-collapsing template would produce
	// for the root commit: ten fields instead of seventeen. It must
	// fail loudly rather than shift values into the wrong columns.
	testutil.StubBinary(t, "jj",
		`printf 'zzz\037z\037zz\037000\0370\03700\0371970-01-01 00:00:00\037i\037e\037r\036'`)

	runner := NewRunner("jj", "/tmp")
	_, err := runner.Log(context.Background(), "")
	if err == nil {
		t.Fatal("Log accepted a record with missing fields")
	}
	if !strings.Contains(err.Error(), "malformed log record") {
		t.Errorf("error = %v, want malformed log record", err)
	}
}

func TestGitPushChange_BookmarkTemplate(t *testing.T) {
	testutil.StubBinary(t, "jj", `echo "args: $@"`)

	runner := NewRunner("jj", "/tmp")
	output, err := runner.GitPushChange(context.Background(), "xyzw", `'push-' ++ change_id.short(10)`)
	if err != nil {
		t.Fatalf("GitPushChange: %v", err)
	}
	if !strings.Contains(output, "--change xyzw") {
		t.Errorf("push args = %q, want --change xyzw", output)
	}
	if !strings.Contains(output, "templates.git_push_bookmark='push-' ++ change_id.short(10)") {
		t.Errorf("push args = %q, want git_push_bookmark override", output)
	}

	output, err = runner.GitPushChange(context.Background(), "xyzw", "")
	if err != nil {
		t.Fatalf("GitPushChange without template: %v", err)
	}
	if strings.Contains(output, "--config") {
		t.Errorf("push args = %q, want no --config without a template", output)
	}
}

func TestGitPush_Flags(t *testing.T) {
	testutil.StubBinary(t, "jj", `echo "args: $@"`)

	runner := NewRunner("jj", "/tmp")
	output, err := runner.GitPush(context.Background(), "feature", true)
	if err != nil {
		t.Fatalf("GitPush: %v", err)
	}
	if !strings.Contains(output, "--bookmark feature") || !strings.Contains(output, "--allow-new") {
		t.Errorf("push args = %q", output)
	}
}
