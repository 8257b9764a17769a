// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/tui"
)

// ShowKey identifies one cached `jj show` rendering. The key is the
// exact commit plus the diff format; Width participates only for the
// external diff-tool format, where the tool receives the panel width
// via COLUMNS and its output is width-dependent. The built-in formats
// produce width-independent output, so resizing never invalidates
// them.
type ShowKey struct {
	Head   jj.Head
	Format jj.DiffFormat
	Width  int
}

// NewShowKey builds a cache key, zeroing the width for formats whose
// output does not depend on it.
func NewShowKey(head jj.Head, format jj.DiffFormat, width int) ShowKey {
	if format != jj.DiffTool {
		width = 0
	}
	return ShowKey{Head: head, Format: format, Width: width}
}

// ShowCache caches rendered `jj show` output per commit and format.
//
// Rendering a large commit can take jj hundreds of milliseconds, and
// the selected row changes on every keypress, so the details panel is
// served from this cache and filled asynchronously. Two properties
// matter:
//
//   - Identity is the commit id, not the change id. When a change is
//     rewritten (describe, squash, rebase) its change id survives but
//     the content differs, so a cached rendering for the old commit
//     must never be served as current for the new one.
//
//   - Stale fallback by change id. While the new commit's rendering is
//     still loading, showing the previous commit's content for the
//     same change is far better than a blank panel. Lookups that miss
//     on the exact commit fall back to the most recent evicted entry
//     for the same change id, flagged stale so the caller knows a
//     refresh is in flight.
//
// The cache is confined to the bubbletea update loop and needs no
// locking.
type ShowCache struct {
	// documents holds current renderings for visible commits.
	documents map[ShowKey]*tui.LargeText

	// oldDocuments holds one generation of renderings for commits
	// that were rewritten, keyed by change id. Served only as stale
	// fallback.
	oldDocuments map[jj.ChangeID]*tui.LargeText

	// activeCommits is the commit currently representing each visible
	// change, from the latest snapshot. Divergent changes keep the
	// first commit the snapshot listed.
	activeCommits map[jj.ChangeID]jj.CommitID
}

// NewShowCache returns an empty cache.
func NewShowCache() *ShowCache {
	return &ShowCache{
		documents:     make(map[ShowKey]*tui.LargeText),
		oldDocuments:  make(map[jj.ChangeID]*tui.LargeText),
		activeCommits: make(map[jj.ChangeID]jj.CommitID),
	}
}

// SetActive installs the latest snapshot's heads and evicts cache
// entries the snapshot invalidated:
//
//   - Changes no longer visible lose all their entries.
//   - Changes whose commit id moved have their current entries demoted
//     to the stale-fallback slot (one generation, most recent wins).
func (cache *ShowCache) SetActive(heads []jj.Head) {
	active := make(map[jj.ChangeID]jj.CommitID, len(heads))
	for _, head := range heads {
		if _, exists := active[head.ChangeID]; !exists {
			active[head.ChangeID] = head.CommitID
		}
	}

	for key, document := range cache.documents {
		currentCommit, visible := active[key.Head.ChangeID]
		if !visible {
			delete(cache.documents, key)
			delete(cache.oldDocuments, key.Head.ChangeID)
			continue
		}
		if key.Head.CommitID != currentCommit {
			cache.oldDocuments[key.Head.ChangeID] = document
			delete(cache.documents, key)
		}
	}
	for changeID := range cache.oldDocuments {
		if _, visible := active[changeID]; !visible {
			delete(cache.oldDocuments, changeID)
		}
	}

	cache.activeCommits = active
}

// Get looks up a rendering. On an exact hit it returns the document
// with stale=false. On a miss it returns the stale-fallback document
// for the change id (possibly nil) with stale=true; the caller should
// display it, if present, while scheduling a fresh load.
func (cache *ShowCache) Get(key ShowKey) (document *tui.LargeText, stale bool) {
	if document, ok := cache.documents[key]; ok {
		return document, false
	}
	return cache.oldDocuments[key.Head.ChangeID], true
}

// Insert stores a fresh rendering. Renderings for commits that are no
// longer the active commit of their change are discarded rather than
// cached: they raced with a rewrite and would only ever be served as
// wrong content.
func (cache *ShowCache) Insert(key ShowKey, document *tui.LargeText) {
	currentCommit, visible := cache.activeCommits[key.Head.ChangeID]
	if !visible || currentCommit != key.Head.CommitID {
		return
	}
	cache.documents[key] = document
	// A fresh rendering supersedes the stale fallback.
	delete(cache.oldDocuments, key.Head.ChangeID)
}

// Len reports the number of current (non-stale) cached renderings.
func (cache *ShowCache) Len() int {
	return len(cache.documents)
}
