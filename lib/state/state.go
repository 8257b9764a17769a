// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

// Package state persists per-workspace UI state between sessions.
//
// The state lives in CBOR at .jj/blazingjj/state.cbor inside the
// workspace. It is pure convenience data: the active revset, the
// selected tab, splitter position, and wrap mode. Losing it costs
// nothing but a few keystrokes, so load errors (missing file, corrupt
// data, old schema) silently fall back to defaults rather than
// blocking startup.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/renameio/v2"
)

// State is the persisted UI state for one workspace.
type State struct {
	// Revset is the last revset entered in the revset input. Empty
	// means the default revset.
	Revset string `cbor:"revset"`

	// Tab is the last active tab: "log", "bookmarks", or "oplog".
	Tab string `cbor:"tab"`

	// LayoutPercent is the splitter position (percentage of the screen
	// given to the revision list), or 0 when the user never moved it.
	LayoutPercent int `cbor:"layout_percent"`

	// Wrap records whether line wrapping was enabled in the details
	// panel.
	Wrap bool `cbor:"wrap"`

	// DiffFormat is the last diff format selected with the format
	// cycle key, or empty to use the configured format.
	DiffFormat string `cbor:"diff_format"`
}

// encMode uses Core Deterministic Encoding so the state file is
// byte-stable for identical state.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("state: CBOR encoder initialization failed: " + err.Error())
	}
}

// Path returns the state file path for a workspace root.
func Path(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, ".jj", "blazingjj", "state.cbor")
}

// Load reads the persisted state for a workspace. A missing or
// unreadable file yields the zero state; unknown fields in the file
// are ignored for forward compatibility.
func Load(workspaceRoot string) State {
	var loaded State
	data, err := os.ReadFile(Path(workspaceRoot))
	if err != nil {
		return State{}
	}
	if err := cbor.Unmarshal(data, &loaded); err != nil {
		return State{}
	}
	return loaded
}

// Save writes the state atomically: renameio stages a temp file in the
// target directory, fsyncs, and renames over the old state so a crash
// mid-write never leaves a torn file.
func Save(workspaceRoot string, current State) error {
	path := Path(workspaceRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := encMode.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending state file: %w", err)
	}
	defer pendingFile.Cleanup()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
