// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

// Package logui implements the blazingjj terminal interface: the
// revision log, bookmark and operation-log tabs, the details panel,
// and the bubbletea model that ties them together.
//
// The package follows a strict data flow: a Source loads repository
// snapshots from jj on a background goroutine and delivers them as
// bubbletea messages; the Model renders only from its last snapshot
// and never calls jj synchronously. Mutations (describe, abandon,
// squash, push) run as commands and are followed by a reload, so the
// jj repository itself remains the single source of truth.
package logui
