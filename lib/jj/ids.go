// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

// ChangeID is the stable identity of a change. It survives rewrites:
// amending or rebasing a commit produces a new commit id under the
// same change id. Not unique among visible commits when a change is
// divergent.
type ChangeID string

// CommitID is the identity of one concrete commit. Every rewrite of a
// change produces a fresh commit id.
type CommitID string

// Head identifies one visible commit: the change it belongs to plus
// the exact commit currently representing it. Two heads with the same
// ChangeID and different CommitIDs are divergent sides of one change.
type Head struct {
	ChangeID ChangeID
	CommitID CommitID
}
