// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching a pattern against one line of
// text. Score is zero when the pattern does not match; Positions holds
// the rune indices of the matched characters for highlight rendering.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's V2 fuzzy matching algorithm against a single
// line. Matching is case-insensitive: both sides are lowercased before
// scoring, and the returned positions index into the original text.
//
// The slab is fzf's scratch allocation arena; callers matching many
// lines in a loop should allocate one with util.MakeSlab and reuse it.
// A nil slab is accepted and simply allocates per call.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := util.ToChars([]byte(strings.ToLower(text)))
	loweredPattern := []rune(strings.ToLower(string(pattern)))

	result, positions := algo.FuzzyMatchV2(false, true, true, &lowered, loweredPattern, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = *positions
	}
	return matched
}
