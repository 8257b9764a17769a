// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal user interface building blocks for
// blazingjj. Built on bubbletea (Elm architecture), these components
// handle the patterns the log viewer composes: overlay splicing,
// dropdown menus, text-entry modals, popups, scrollbars, fuzzy
// matching, and ANSI-aware handling of very large command output.
//
// The domain-specific viewer (lib/logui) owns data sources, layout,
// and rendering of revisions; this package stays jj-agnostic apart
// from the theme's naming.
package tui
