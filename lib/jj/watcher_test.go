// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blazingjj/blazingjj/lib/testutil"
)

// fakeRepo creates a directory tree shaped like a jj workspace store
// with one op head, and returns the workspace root.
func fakeRepo(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	headsDir := filepath.Join(root, ".jj", "repo", "op_heads", "heads")
	if err := os.MkdirAll(headsDir, 0o755); err != nil {
		t.Fatalf("mkdir heads: %v", err)
	}
	if err := os.WriteFile(filepath.Join(headsDir, "aaaa0000"), nil, 0o644); err != nil {
		t.Fatalf("write head: %v", err)
	}
	return root
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatchOpHeads_NotifiesOnHeadChange(t *testing.T) {
	t.Parallel()

	root := fakeRepo(t)
	watcher, err := WatchOpHeads(root, testLogger())
	if err != nil {
		t.Fatalf("WatchOpHeads: %v", err)
	}
	defer watcher.Close()

	headsDir := filepath.Join(root, ".jj", "repo", "op_heads", "heads")
	if err := os.WriteFile(filepath.Join(headsDir, "bbbb1111"), nil, 0o644); err != nil {
		t.Fatalf("write new head: %v", err)
	}

	testutil.RequireReceive(t, watcher.Events(), 5*time.Second, "waiting for head change notification")
}

func TestWatchOpHeads_IgnoresLockFiles(t *testing.T) {
	t.Parallel()

	root := fakeRepo(t)
	watcher, err := WatchOpHeads(root, testLogger())
	if err != nil {
		t.Fatalf("WatchOpHeads: %v", err)
	}
	defer watcher.Close()

	headsDir := filepath.Join(root, ".jj", "repo", "op_heads", "heads")
	lockPath := filepath.Join(headsDir, "op_heads.lock")
	if err := os.WriteFile(lockPath, nil, 0o644); err != nil {
		t.Fatalf("write lock: %v", err)
	}
	if err := os.Remove(lockPath); err != nil {
		t.Fatalf("remove lock: %v", err)
	}

	select {
	case <-watcher.Events():
		t.Fatal("lock file churn produced a notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchOpHeads_WorkspacePointer(t *testing.T) {
	t.Parallel()

	// Secondary workspaces store the primary repo path in a plain
	// .jj/repo file instead of a directory.
	primary := fakeRepo(t)
	secondary := t.TempDir()
	if err := os.MkdirAll(filepath.Join(secondary, ".jj"), 0o755); err != nil {
		t.Fatalf("mkdir .jj: %v", err)
	}
	pointer := filepath.Join(primary, ".jj", "repo")
	if err := os.WriteFile(filepath.Join(secondary, ".jj", "repo"), []byte(pointer+"\n"), 0o644); err != nil {
		t.Fatalf("write repo pointer: %v", err)
	}

	watcher, err := WatchOpHeads(secondary, testLogger())
	if err != nil {
		t.Fatalf("WatchOpHeads: %v", err)
	}
	defer watcher.Close()

	headsDir := filepath.Join(primary, ".jj", "repo", "op_heads", "heads")
	if err := os.WriteFile(filepath.Join(headsDir, "cccc2222"), nil, 0o644); err != nil {
		t.Fatalf("write new head: %v", err)
	}

	testutil.RequireReceive(t, watcher.Events(), 5*time.Second, "waiting for notification through pointer")
}

func TestWatchOpHeads_MissingRepo(t *testing.T) {
	t.Parallel()

	if _, err := WatchOpHeads(t.TempDir(), testLogger()); err == nil {
		t.Fatal("expected error for directory without .jj")
	}
}
