// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"strings"
	"testing"

	"github.com/blazingjj/blazingjj/lib/testutil"
)

func TestRunner_Command(t *testing.T) {
	t.Parallel()

	runner := NewRunner("jj", "/some/workspace")
	command := runner.Command(context.Background(), "show", "@")

	// exec.Cmd.Args includes the program name as Args[0].
	expectedArgs := []string{"jj", "-R", "/some/workspace", "--no-pager", "--color", "always", "show", "@"}
	if len(command.Args) != len(expectedArgs) {
		t.Fatalf("command.Args = %v, want %v", command.Args, expectedArgs)
	}
	for index, want := range expectedArgs {
		if command.Args[index] != want {
			t.Errorf("command.Args[%d] = %q, want %q", index, command.Args[index], want)
		}
	}
}

func TestRunner_Run(t *testing.T) {
	testutil.StubBinary(t, "jj", `echo "args: $@"`)

	runner := NewRunner("jj", "/tmp")
	output, err := runner.Run(context.Background(), "root")
	if err != nil {
		t.Fatalf("Run(root): %v", err)
	}
	if !strings.Contains(output, "--color never") {
		t.Errorf("stub saw %q, want color disabled", output)
	}
	if !strings.Contains(output, "-R /tmp") {
		t.Errorf("stub saw %q, want -R /tmp", output)
	}
}

func TestRunner_Run_FailureIncludesStderr(t *testing.T) {
	testutil.StubBinary(t, "jj", `echo "Error: no jj repo" >&2; exit 1`)

	runner := NewRunner("jj", "/tmp/somewhere")
	_, err := runner.Run(context.Background(), "root")
	if err == nil {
		t.Fatal("expected error from failing stub")
	}
	if !strings.Contains(err.Error(), "no jj repo") {
		t.Errorf("error = %v, want to contain stub stderr", err)
	}
	if !strings.Contains(err.Error(), "/tmp/somewhere") {
		t.Errorf("error = %v, want to contain repository dir", err)
	}
}

func TestRunner_RunCombined(t *testing.T) {
	testutil.StubBinary(t, "jj", `echo "to stdout"; echo "to stderr" >&2`)

	runner := NewRunner("jj", "/tmp")
	output, err := runner.RunCombined(context.Background(), "git", "fetch")
	if err != nil {
		t.Fatalf("RunCombined: %v", err)
	}
	if !strings.Contains(output, "to stdout") || !strings.Contains(output, "to stderr") {
		t.Errorf("output = %q, want both streams", output)
	}
}

func TestRunner_WithDir(t *testing.T) {
	t.Parallel()

	runner := NewRunner("jj", "/a")
	rerooted := runner.WithDir("/b")
	if rerooted.Dir() != "/b" || rerooted.Binary() != "jj" {
		t.Errorf("WithDir = %q/%q, want /b with same binary", rerooted.Dir(), rerooted.Binary())
	}
	if runner.Dir() != "/a" {
		t.Errorf("original runner dir mutated to %q", runner.Dir())
	}
}
