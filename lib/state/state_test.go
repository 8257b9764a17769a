// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()

	saved := State{
		Revset:        "mine() | @",
		Tab:           "bookmarks",
		LayoutPercent: 65,
		Wrap:          true,
		DiffFormat:    "git",
	}
	if err := Save(root, saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Load(root)
	if loaded != saved {
		t.Errorf("Load = %+v, want %+v", loaded, saved)
	}
}

func TestLoadMissingFileReturnsZero(t *testing.T) {
	loaded := Load(t.TempDir())
	if loaded != (State{}) {
		t.Errorf("Load of missing file = %+v, want zero state", loaded)
	}
}

func TestLoadCorruptFileReturnsZero(t *testing.T) {
	root := t.TempDir()
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not cbor at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded := Load(root)
	if loaded != (State{}) {
		t.Errorf("Load of corrupt file = %+v, want zero state", loaded)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	root := t.TempDir()

	if err := Save(root, State{Revset: "first"}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := Save(root, State{Revset: "second"}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if loaded := Load(root); loaded.Revset != "second" {
		t.Errorf("Revset = %q, want second", loaded.Revset)
	}

	// No stray temp files left behind in the state directory.
	entries, err := os.ReadDir(filepath.Dir(Path(root)))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("state directory has extra files: %v", names)
	}
}

func TestPathLayout(t *testing.T) {
	got := Path("/work/repo")
	want := filepath.Join("/work/repo", ".jj", "blazingjj", "state.cbor")
	if got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}
