// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes jj commands against a specific repository directory.
// All operations target this directory via "jj -R <dir>". There is no
// default directory — callers must always specify which repository
// they mean.
type Runner struct {
	binary string
	dir    string
}

// NewRunner returns a Runner using the given jj binary (a name looked
// up on PATH or an absolute path) targeting the given directory.
func NewRunner(binary, dir string) *Runner {
	return &Runner{binary: binary, dir: dir}
}

// Dir returns the repository directory.
func (r *Runner) Dir() string {
	return r.dir
}

// Binary returns the jj binary name or path.
func (r *Runner) Binary() string {
	return r.binary
}

// WithDir returns a Runner with the same binary targeting another
// directory. Used after root discovery to re-anchor at the workspace
// root.
func (r *Runner) WithDir(dir string) *Runner {
	return &Runner{binary: r.binary, dir: dir}
}

// baseArgs are injected into every invocation: -R targets the
// repository, --no-pager keeps jj from spawning a pager on descendants
// that ignore the non-TTY stdout.
func (r *Runner) baseArgs(color string) []string {
	return []string{"-R", r.dir, "--no-pager", "--color", color}
}

// Run executes a jj command with color disabled and returns stdout.
// Stderr is captured separately and included in error messages on
// failure. Use this for anything that gets parsed.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, "never", args)
}

// RunColor executes a jj command with forced ANSI color output and
// returns stdout. Use this for output that is displayed verbatim in
// the TUI (show, diff).
func (r *Runner) RunColor(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, "always", args)
}

// RunCombined executes a jj command and returns trimmed stdout+stderr.
// jj writes progress for remote operations (git fetch, git push) to
// stderr even on success; callers displaying operation results want
// both streams.
func (r *Runner) RunCombined(ctx context.Context, args ...string) (string, error) {
	fullArgs := append(r.baseArgs("never"), args...)
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, r.binary, fullArgs...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("jj %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), r.dir, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String() + stderr.String()), nil
}

// Command returns an *exec.Cmd for a jj command without running it.
// The caller gets full control over Env, Stdin, Stdout, and Stderr
// before starting the process. The -R and --no-pager flags are
// automatically prepended; color is forced on because Command is only
// used for display output (external diff tools).
func (r *Runner) Command(ctx context.Context, args ...string) *exec.Cmd {
	fullArgs := append(r.baseArgs("always"), args...)
	return exec.CommandContext(ctx, r.binary, fullArgs...)
}

func (r *Runner) run(ctx context.Context, color string, args []string) (string, error) {
	fullArgs := append(r.baseArgs(color), args...)
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, r.binary, fullArgs...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("jj %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), r.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// trimEndLine removes a single trailing newline (LF or CRLF) from
// single-value command output such as "jj root".
func trimEndLine(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
