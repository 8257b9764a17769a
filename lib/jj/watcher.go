// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/blake3"
)

// Watcher notifies the TUI when another jj invocation mutates the
// repository. jj records every operation as a new head file under
// .jj/repo/op_heads/heads, so watching that directory catches all
// out-of-band changes (a jj command in another terminal, an editor
// plugin, a background fetch).
//
// fsnotify delivers several events per operation (create + rename of
// lock files, removal of the old head). A blake3 digest over the
// current head file names collapses those bursts into a single
// notification and suppresses events that do not change the head set.
type Watcher struct {
	headsDir string
	fs       *fsnotify.Watcher
	events   chan struct{}
	done     chan struct{}
	logger   *slog.Logger
}

// WatchOpHeads starts watching the operation heads of the workspace
// rooted at root. Close the returned watcher to release the inotify
// watch.
func WatchOpHeads(root string, logger *slog.Logger) (*Watcher, error) {
	headsDir, err := opHeadsDir(root)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(headsDir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", headsDir, err)
	}

	watcher := &Watcher{
		headsDir: headsDir,
		fs:       fs,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		logger:   logger,
	}
	go watcher.loop()
	return watcher, nil
}

// Events returns a channel that receives one value per observed
// repository change. The channel has capacity 1; a notification that
// arrives while a previous one is unconsumed is coalesced with it.
func (watcher *Watcher) Events() <-chan struct{} {
	return watcher.events
}

// Close stops the watcher. The events channel is not closed; pending
// reads simply stop receiving.
func (watcher *Watcher) Close() error {
	close(watcher.done)
	return watcher.fs.Close()
}

func (watcher *Watcher) loop() {
	digest := watcher.headsDigest()
	for {
		select {
		case <-watcher.done:
			return
		case _, ok := <-watcher.fs.Events:
			if !ok {
				return
			}
			next := watcher.headsDigest()
			if next == digest {
				continue
			}
			digest = next
			select {
			case watcher.events <- struct{}{}:
			default:
				// A notification is already pending.
			}
		case err, ok := <-watcher.fs.Errors:
			if !ok {
				return
			}
			watcher.logger.Warn("op heads watch error", "error", err)
		}
	}
}

// headsDigest hashes the sorted head file names. Lock files are
// excluded so acquiring and releasing the op heads lock does not count
// as a change.
func (watcher *Watcher) headsDigest() [32]byte {
	entries, err := os.ReadDir(watcher.headsDir)
	if err != nil {
		watcher.logger.Warn("read op heads", "dir", watcher.headsDir, "error", err)
		return [32]byte{}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".lock") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return blake3.Sum256([]byte(strings.Join(names, "\x00")))
}

// opHeadsDir resolves the op_heads/heads directory for a workspace
// root. In a secondary workspace .jj/repo is a plain file containing
// the path of the primary repository store.
func opHeadsDir(root string) (string, error) {
	repoDir := filepath.Join(root, ".jj", "repo")
	info, err := os.Stat(repoDir)
	if err != nil {
		return "", fmt.Errorf("locate jj repo store: %w", err)
	}
	if !info.IsDir() {
		redirect, err := os.ReadFile(repoDir)
		if err != nil {
			return "", fmt.Errorf("read workspace repo pointer: %w", err)
		}
		repoDir = strings.TrimSpace(string(redirect))
		if !filepath.IsAbs(repoDir) {
			repoDir = filepath.Join(root, ".jj", repoDir)
		}
	}

	headsDir := filepath.Join(repoDir, "op_heads", "heads")
	if _, err := os.Stat(headsDir); err != nil {
		return "", fmt.Errorf("locate op heads: %w", err)
	}
	return headsDir, nil
}
