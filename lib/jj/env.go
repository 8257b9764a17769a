// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"fmt"
)

// Env is the per-repository context the TUI runs in: the workspace
// root, the repository configuration, and the revset shown by default.
type Env struct {
	// Root is the workspace root discovered via "jj root".
	Root string

	// Config is the parsed output of "jj config list" at Root.
	Config Config

	// DefaultRevset overrides the revset used for the log view. Empty
	// means jj's configured default.
	DefaultRevset string

	runner *Runner
}

// NewEnv discovers the jj workspace containing path and loads its
// configuration. The binary argument names the jj executable
// (normally just "jj"). Fails when path is not inside a jj workspace
// or the configuration cannot be read.
func NewEnv(ctx context.Context, path, defaultRevset, binary string) (*Env, error) {
	probe := NewRunner(binary, path)
	rootOutput, err := probe.Run(ctx, "root", "--ignore-working-copy")
	if err != nil {
		return nil, fmt.Errorf("no jj workspace found in %s: %w", path, err)
	}
	root := trimEndLine(rootOutput)

	runner := probe.WithDir(root)
	configOutput, err := runner.Run(ctx, "config", "list", "--ignore-working-copy")
	if err != nil {
		return nil, fmt.Errorf("read jj config: %w", err)
	}
	config, err := ParseConfig(configOutput)
	if err != nil {
		return nil, err
	}

	return &Env{
		Root:          root,
		Config:        config,
		DefaultRevset: defaultRevset,
		runner:        runner,
	}, nil
}

// Runner returns the Runner anchored at the workspace root.
func (env *Env) Runner() *Runner {
	return env.runner
}
