// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	"github.com/junegunn/fzf/src/util"
)

func TestFuzzyMatchBasic(t *testing.T) {
	result := FuzzyMatch("refactor watcher shutdown path", []rune("watcher"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if len(result.Positions) == 0 {
		t.Fatal("expected non-empty match positions")
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	// "wsd" should match across words: w from watcher, s from
	// shutdown, d from shutdown.
	result := FuzzyMatch("watcher shutdown", []rune("wsd"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for non-contiguous fuzzy match")
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := FuzzyMatch("refactor watcher shutdown", []rune("qqq"), nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for no match, got %d", result.Score)
	}
	if len(result.Positions) != 0 {
		t.Errorf("expected empty positions for no match, got %v", result.Positions)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	result := FuzzyMatch("Refactor Watcher Shutdown", []rune("watcher"), nil)
	if result.Score <= 0 {
		t.Fatalf("expected case-insensitive match, got score=%d", result.Score)
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	result := FuzzyMatch("anything", []rune{}, nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for empty pattern, got %d", result.Score)
	}
}

func TestFuzzyMatchReusedSlab(t *testing.T) {
	slab := util.MakeSlab(100*1024, 2048)
	first := FuzzyMatch("bookmark push target", []rune("push"), slab)
	second := FuzzyMatch("bookmark push target", []rune("push"), slab)
	if first.Score != second.Score {
		t.Errorf("slab reuse changed score: %d vs %d", first.Score, second.Score)
	}
}
