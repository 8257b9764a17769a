// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"testing"

	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/tui"
)

func head(change, commit string) jj.Head {
	return jj.Head{ChangeID: jj.ChangeID(change), CommitID: jj.CommitID(commit)}
}

func document(content string) *tui.LargeText {
	return tui.NewLargeText(content)
}

func TestShowCacheExactHit(t *testing.T) {
	cache := NewShowCache()
	first := head("qqsw", "aaaa")
	cache.SetActive([]jj.Head{first})

	key := NewShowKey(first, jj.DiffColorWords, 80)
	cache.Insert(key, document("diff output"))

	got, stale := cache.Get(key)
	if got == nil || stale {
		t.Fatalf("Get = (%v, stale=%v), want fresh hit", got, stale)
	}
}

func TestShowCacheMissWithoutFallback(t *testing.T) {
	cache := NewShowCache()
	cache.SetActive([]jj.Head{head("qqsw", "aaaa")})

	got, stale := cache.Get(NewShowKey(head("qqsw", "aaaa"), jj.DiffGit, 0))
	if got != nil || !stale {
		t.Fatalf("Get on empty cache = (%v, stale=%v), want (nil, true)", got, stale)
	}
}

func TestShowCacheRewrittenCommitServedStale(t *testing.T) {
	cache := NewShowCache()
	oldHead := head("qqsw", "aaaa")
	cache.SetActive([]jj.Head{oldHead})
	cache.Insert(NewShowKey(oldHead, jj.DiffColorWords, 0), document("old content"))

	// The change is rewritten: same change id, new commit id.
	newHead := head("qqsw", "bbbb")
	cache.SetActive([]jj.Head{newHead})

	got, stale := cache.Get(NewShowKey(newHead, jj.DiffColorWords, 0))
	if got == nil {
		t.Fatal("expected stale fallback content for rewritten change")
	}
	if !stale {
		t.Error("fallback content must be flagged stale")
	}

	// The old key must no longer be served as fresh.
	if _, staleOld := cache.Get(NewShowKey(oldHead, jj.DiffColorWords, 0)); !staleOld {
		t.Error("old commit key served as fresh after rewrite")
	}
}

func TestShowCacheFreshInsertSupersedesStale(t *testing.T) {
	cache := NewShowCache()
	oldHead := head("qqsw", "aaaa")
	cache.SetActive([]jj.Head{oldHead})
	cache.Insert(NewShowKey(oldHead, jj.DiffColorWords, 0), document("old"))

	newHead := head("qqsw", "bbbb")
	cache.SetActive([]jj.Head{newHead})
	cache.Insert(NewShowKey(newHead, jj.DiffColorWords, 0), document("new"))

	got, stale := cache.Get(NewShowKey(newHead, jj.DiffColorWords, 0))
	if got == nil || stale {
		t.Fatalf("Get = (%v, stale=%v), want fresh new content", got, stale)
	}
}

func TestShowCacheEvictsInvisibleChanges(t *testing.T) {
	cache := NewShowCache()
	kept := head("qqsw", "aaaa")
	dropped := head("zzxv", "cccc")
	cache.SetActive([]jj.Head{kept, dropped})
	cache.Insert(NewShowKey(kept, jj.DiffColorWords, 0), document("kept"))
	cache.Insert(NewShowKey(dropped, jj.DiffColorWords, 0), document("dropped"))

	cache.SetActive([]jj.Head{kept})

	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1 after eviction", cache.Len())
	}
	if got, _ := cache.Get(NewShowKey(dropped, jj.DiffColorWords, 0)); got != nil {
		t.Error("evicted change still served from cache")
	}
}

func TestShowCacheRejectsRacingInsert(t *testing.T) {
	cache := NewShowCache()
	oldHead := head("qqsw", "aaaa")
	cache.SetActive([]jj.Head{oldHead})

	// Snapshot moves on before the load for the old commit finishes.
	cache.SetActive([]jj.Head{head("qqsw", "bbbb")})
	cache.Insert(NewShowKey(oldHead, jj.DiffColorWords, 0), document("raced"))

	if cache.Len() != 0 {
		t.Errorf("racing insert was cached; Len = %d, want 0", cache.Len())
	}
}

func TestShowCacheWidthOnlyKeysDiffTool(t *testing.T) {
	current := head("qqsw", "aaaa")

	colorWordsNarrow := NewShowKey(current, jj.DiffColorWords, 80)
	colorWordsWide := NewShowKey(current, jj.DiffColorWords, 200)
	if colorWordsNarrow != colorWordsWide {
		t.Error("built-in format keys must not vary by width")
	}

	toolNarrow := NewShowKey(current, jj.DiffTool, 80)
	toolWide := NewShowKey(current, jj.DiffTool, 200)
	if toolNarrow == toolWide {
		t.Error("diff-tool keys must vary by width")
	}
}

func TestShowCacheFormatsCachedIndependently(t *testing.T) {
	cache := NewShowCache()
	current := head("qqsw", "aaaa")
	cache.SetActive([]jj.Head{current})
	cache.Insert(NewShowKey(current, jj.DiffColorWords, 0), document("color-words"))

	if got, stale := cache.Get(NewShowKey(current, jj.DiffGit, 0)); got != nil && !stale {
		t.Error("git format served from color-words entry")
	}
}

func TestShowCacheDivergentChangeUsesFirstHead(t *testing.T) {
	cache := NewShowCache()
	sideA := head("qqsw", "aaaa")
	sideB := head("qqsw", "bbbb")
	cache.SetActive([]jj.Head{sideA, sideB})

	cache.Insert(NewShowKey(sideA, jj.DiffColorWords, 0), document("side a"))
	if got, stale := cache.Get(NewShowKey(sideA, jj.DiffColorWords, 0)); got == nil || stale {
		t.Fatal("first divergent head not cached")
	}
}
