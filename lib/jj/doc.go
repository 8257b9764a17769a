// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

// Package jj provides typed access to the Jujutsu CLI. blazingjj never
// links against jj internals — every query and mutation shells out to
// the jj binary, targeting a specific repository via the -R flag, which
// is automatically injected by all Runner methods.
//
// Queries that feed the display (log, show, bookmark list, op log) use
// machine-readable templates with unit-separator delimited fields so
// that parsing never depends on jj's human-oriented formatting.
//
// [Env] captures the per-repository context: the workspace root
// discovered via "jj root" and the repository configuration read from
// "jj config list".
package jj
